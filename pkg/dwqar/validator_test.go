package dwqar

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateReportComplete(t *testing.T) {
	period, _ := ParsePeriod("2025-Annual")
	// One extra sample on each rule so nothing sits exactly at its minimum.
	samples := makeSamples(map[string]int{"T1.8-ecol": 5, "T2.1-pH": 3, "M1.1-turb": 2})
	r := Aggregate(uuid.New(), period, samples, testRules)

	v := ValidateReport(r)
	if !v.CanExport {
		t.Fatalf("complete report must be exportable, errors: %v", v.Errors)
	}
	if len(v.Errors) != 0 {
		t.Errorf("unexpected errors: %v", v.Errors)
	}
	if len(v.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", v.Warnings)
	}
}

func TestValidateReportZeroSampleRuleBlocksExport(t *testing.T) {
	period, _ := ParsePeriod("2025-Annual")
	samples := makeSamples(map[string]int{"T1.8-ecol": 5, "T2.1-pH": 3})
	r := Aggregate(uuid.New(), period, samples, testRules)

	v := ValidateReport(r)
	if v.CanExport {
		t.Fatal("report with a zero-sample rule must not be exportable")
	}
	var named bool
	for _, e := range v.Errors {
		if strings.Contains(e, "M1.1-turb") {
			named = true
		}
	}
	if !named {
		t.Errorf("errors must name the missing rule, got %v", v.Errors)
	}
}

func TestValidateReportNoMarginWarning(t *testing.T) {
	period, _ := ParsePeriod("2025-Annual")
	samples := makeSamples(map[string]int{"T1.8-ecol": 4, "T2.1-pH": 3, "M1.1-turb": 2})
	r := Aggregate(uuid.New(), period, samples, testRules)

	v := ValidateReport(r)
	if !v.CanExport {
		t.Fatalf("exactly-met minimum must still export, errors: %v", v.Errors)
	}
	var warned bool
	for _, w := range v.Warnings {
		if strings.Contains(w, "T1.8-ecol") && strings.Contains(w, "no margin") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected no-margin warning for T1.8-ecol, got %v", v.Warnings)
	}
}

func TestValidateReportLowCompletenessBlocksExport(t *testing.T) {
	period, _ := ParsePeriod("2025-Annual")
	// All rules sampled (no zero-sample errors) but two of three below
	// minimum: completeness 33% < threshold.
	samples := makeSamples(map[string]int{"T1.8-ecol": 1, "T2.1-pH": 1, "M1.1-turb": 2})
	r := Aggregate(uuid.New(), period, samples, testRules)

	v := ValidateReport(r)
	if v.CanExport {
		t.Fatal("report below the completeness threshold must not export")
	}
	var thresholdErr bool
	for _, e := range v.Errors {
		if strings.Contains(e, "export threshold") {
			thresholdErr = true
		}
	}
	if !thresholdErr {
		t.Errorf("expected a threshold error, got %v", v.Errors)
	}
	if len(v.Warnings) < 2 {
		t.Errorf("below-minimum rules should warn, got %v", v.Warnings)
	}
}
