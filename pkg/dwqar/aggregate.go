package dwqar

import (
	"sort"

	"github.com/google/uuid"
)

// ReportStatus describes how far sample collection has progressed for a
// reporting period.
type ReportStatus string

const (
	StatusNotStarted ReportStatus = "not-started"
	StatusInProgress ReportStatus = "in-progress"
	StatusComplete   ReportStatus = "complete"
)

// Sample is one water-quality test result, already scoped to the
// organization and period by the caller.
type Sample struct {
	RuleID            string
	SupplyComponentID string
	Parameter         string
	Value             float64
	Unit              string
	SampledAt         string // RFC3339, carried through to the export
	Complies          bool
}

// RuleResult is the per-rule breakdown of an aggregate report.
type RuleResult struct {
	RuleID   string       `json:"ruleId"`
	Category RuleCategory `json:"category"`
	Required int          `json:"required"`
	Actual   int          `json:"actual"`
	Passing  bool         `json:"passing"`
}

// Report is the derived DWQAR aggregate for one organization and period.
// It is recomputed from raw samples on every request, never persisted.
type Report struct {
	OrganizationID uuid.UUID    `json:"organizationId"`
	Period         Period       `json:"-"`
	PeriodTag      string       `json:"reportingPeriod"`
	TotalSamples   int          `json:"totalSamples"`
	TotalRules     int          `json:"totalRules"`
	Completeness   float64      `json:"completeness"` // percent, 0-100
	Status         ReportStatus `json:"status"`
	Rules          []RuleResult `json:"rules"`
	Samples        []Sample     `json:"-"`
}

// Aggregate groups samples by regulatory rule and computes the completion
// ratio against the required-sample reference table. required lists every
// applicable rule ID with its annual minimum; rules that received samples
// but are not listed are still counted, with RequiredSamples falling back
// to a minimum of one.
//
// The function is deterministic: rules come back sorted by ID, and the
// same samples always produce the same report.
func Aggregate(orgID uuid.UUID, period Period, samples []Sample, required map[string]int) Report {
	if required == nil {
		required = DefaultRules()
	}

	counts := make(map[string]int)
	for _, s := range samples {
		counts[s.RuleID]++
	}

	ruleIDs := make([]string, 0, len(required))
	for id := range required {
		ruleIDs = append(ruleIDs, id)
	}
	for id := range counts {
		if _, ok := required[id]; !ok {
			ruleIDs = append(ruleIDs, id)
		}
	}
	sort.Strings(ruleIDs)

	report := Report{
		OrganizationID: orgID,
		Period:         period,
		PeriodTag:      period.Tag,
		TotalSamples:   len(samples),
		TotalRules:     len(ruleIDs),
		Rules:          make([]RuleResult, 0, len(ruleIDs)),
		Samples:        samples,
	}

	passing := 0
	for _, id := range ruleIDs {
		need := requiredFor(id, required, period)
		got := counts[id]
		pass := got >= need
		if pass {
			passing++
		}
		report.Rules = append(report.Rules, RuleResult{
			RuleID:   id,
			Category: CategoryForRule(id),
			Required: need,
			Actual:   got,
			Passing:  pass,
		})
	}

	if report.TotalRules > 0 {
		report.Completeness = float64(passing) / float64(report.TotalRules) * 100
	}

	switch {
	case report.TotalSamples == 0:
		report.Status = StatusNotStarted
	case report.Completeness < 100:
		report.Status = StatusInProgress
	default:
		report.Status = StatusComplete
	}
	return report
}

// requiredFor scales an annual requirement from the supplied reference
// table to the period, falling back to one sample for unlisted rules.
func requiredFor(ruleID string, required map[string]int, p Period) int {
	annual, ok := required[ruleID]
	if !ok || annual < 1 {
		return 1
	}
	if p.Annual() {
		return annual
	}
	return (annual + 3) / 4
}
