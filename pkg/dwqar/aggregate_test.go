package dwqar

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

var testRules = map[string]int{
	"T1.8-ecol": 4,
	"T2.1-pH":   2,
	"M1.1-turb": 1,
}

func makeSamples(ruleCounts map[string]int) []Sample {
	var out []Sample
	for rule, n := range ruleCounts {
		for i := 0; i < n; i++ {
			out = append(out, Sample{
				RuleID:    rule,
				Parameter: RuleParameter(rule),
				Value:     1.0,
				SampledAt: "2025-02-01T09:00:00Z",
				Complies:  true,
			})
		}
	}
	return out
}

func TestAggregateStatusDerivation(t *testing.T) {
	orgID := uuid.New()
	period, _ := ParsePeriod("2025-Annual")

	tests := []struct {
		name         string
		counts       map[string]int
		status       ReportStatus
		completeness float64
	}{
		{"no samples", map[string]int{}, StatusNotStarted, 0},
		{"partial", map[string]int{"T1.8-ecol": 4}, StatusInProgress, 100.0 / 3},
		{"all met", map[string]int{"T1.8-ecol": 4, "T2.1-pH": 2, "M1.1-turb": 1}, StatusComplete, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Aggregate(orgID, period, makeSamples(tc.counts), testRules)
			if r.Status != tc.status {
				t.Errorf("status = %s, want %s", r.Status, tc.status)
			}
			if diff := r.Completeness - tc.completeness; diff > 0.001 || diff < -0.001 {
				t.Errorf("completeness = %.3f, want %.3f", r.Completeness, tc.completeness)
			}
			if r.TotalRules != len(testRules) {
				t.Errorf("totalRules = %d, want %d", r.TotalRules, len(testRules))
			}
		})
	}
}

func TestAggregateDeterministic(t *testing.T) {
	orgID := uuid.New()
	period, _ := ParsePeriod("2025-Q1")
	samples := makeSamples(map[string]int{"T1.8-ecol": 2, "T2.1-pH": 1})

	first := Aggregate(orgID, period, samples, testRules)
	second := Aggregate(orgID, period, samples, testRules)

	if !reflect.DeepEqual(first, second) {
		t.Error("aggregation of unchanged samples must be identical")
	}
	for i := 1; i < len(first.Rules); i++ {
		if first.Rules[i-1].RuleID >= first.Rules[i].RuleID {
			t.Fatalf("rules not sorted: %q before %q", first.Rules[i-1].RuleID, first.Rules[i].RuleID)
		}
	}
}

func TestAggregateMonotonic(t *testing.T) {
	orgID := uuid.New()
	period, _ := ParsePeriod("2025-Annual")

	// T1.8-ecol needs 4 samples; add them one at a time. A rule may only
	// ever move from failing to passing.
	var samples []Sample
	prevPassing := false
	for i := 0; i < 6; i++ {
		r := Aggregate(orgID, period, samples, testRules)
		rule := findRule(t, r, "T1.8-ecol")
		if prevPassing && !rule.Passing {
			t.Fatalf("rule regressed from passing to failing at %d samples", rule.Actual)
		}
		prevPassing = rule.Passing
		if rule.Actual < rule.Required && rule.Passing {
			t.Fatalf("rule passing with %d of %d samples", rule.Actual, rule.Required)
		}
		samples = append(samples, Sample{RuleID: "T1.8-ecol", Parameter: "ecol", SampledAt: "2025-03-01T09:00:00Z"})
	}

	final := Aggregate(orgID, period, samples, testRules)
	if rule := findRule(t, final, "T1.8-ecol"); !rule.Passing {
		t.Errorf("rule should pass with %d of %d samples", rule.Actual, rule.Required)
	}
}

func TestAggregateCountsUnlistedRules(t *testing.T) {
	orgID := uuid.New()
	period, _ := ParsePeriod("2025-Annual")
	samples := []Sample{{RuleID: "T4.1-radon", SampledAt: "2025-06-01T09:00:00Z"}}

	r := Aggregate(orgID, period, samples, testRules)
	if r.TotalRules != len(testRules)+1 {
		t.Fatalf("totalRules = %d, want %d", r.TotalRules, len(testRules)+1)
	}
	rule := findRule(t, r, "T4.1-radon")
	if !rule.Passing || rule.Required != 1 {
		t.Errorf("unlisted rule should require 1 sample and pass, got required=%d passing=%v", rule.Required, rule.Passing)
	}
}

func TestQuarterlyRequirementScaling(t *testing.T) {
	annual, _ := ParsePeriod("2025-Annual")
	q1, _ := ParsePeriod("2025-Q1")

	if got := RequiredSamples("T1.8-ecol", annual); got != 52 {
		t.Errorf("annual requirement = %d, want 52", got)
	}
	if got := RequiredSamples("T1.8-ecol", q1); got != 13 {
		t.Errorf("quarterly requirement = %d, want 13", got)
	}
	if got := RequiredSamples("T2.4-nitra", q1); got != 1 {
		t.Errorf("quarterly requirement for 4/year rule = %d, want 1", got)
	}
	if got := RequiredSamples("unknown-rule", annual); got != 1 {
		t.Errorf("unknown rule requirement = %d, want 1", got)
	}
}

func TestCategoryForRule(t *testing.T) {
	tests := []struct {
		ruleID string
		want   RuleCategory
	}{
		{"T1.8-ecol", CategoryBacteriological},
		{"T2.1-pH", CategoryChemical},
		{"T3.1-crypto", CategoryProtozoa},
		{"T4.1-radon", CategoryRadiological},
		{"M1.1-turb", CategoryMonitoring},
		{"V1.1-ecol", CategoryVerification},
		{"O1.1-fac", CategoryOperational},
		{"X9.9", CategoryWaterQuality},
	}
	for _, tc := range tests {
		if got := CategoryForRule(tc.ruleID); got != tc.want {
			t.Errorf("CategoryForRule(%q) = %s, want %s", tc.ruleID, got, tc.want)
		}
	}

	if got := RuleParameter("T1.8-ecol"); got != "ecol" {
		t.Errorf("RuleParameter = %q, want ecol", got)
	}
	if got := RuleParameter("M1"); got != "" {
		t.Errorf("RuleParameter without suffix = %q, want empty", got)
	}
}

func findRule(t *testing.T, r Report, ruleID string) RuleResult {
	t.Helper()
	for _, rule := range r.Rules {
		if rule.RuleID == ruleID {
			return rule
		}
	}
	t.Fatalf("rule %s not in report", ruleID)
	return RuleResult{}
}
