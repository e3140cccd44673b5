package dwqar

import "fmt"

// MinExportCompleteness is the policy floor below which a report cannot
// be exported for submission.
const MinExportCompleteness = 80.0

// Validation is the export-readiness result for an aggregate report.
type Validation struct {
	CanExport bool     `json:"canExport"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
}

// ValidateReport checks an aggregate against the export-readiness
// criteria: no mandatory rule may sit at zero samples, and overall
// completeness must reach MinExportCompleteness. Rules that scrape in
// exactly at the minimum draw a warning so suppliers can build a buffer
// before the deadline. Pure function, no I/O.
func ValidateReport(r Report) Validation {
	v := Validation{Errors: []string{}, Warnings: []string{}}

	for _, rule := range r.Rules {
		switch {
		case rule.Actual == 0:
			v.Errors = append(v.Errors, fmt.Sprintf("rule %s has no samples for %s", rule.RuleID, r.PeriodTag))
		case !rule.Passing:
			v.Warnings = append(v.Warnings, fmt.Sprintf("rule %s below minimum: %d of %d samples", rule.RuleID, rule.Actual, rule.Required))
		case rule.Actual == rule.Required:
			v.Warnings = append(v.Warnings, fmt.Sprintf("rule %s met exactly with no margin (%d samples)", rule.RuleID, rule.Actual))
		}
	}

	if r.Completeness < MinExportCompleteness {
		v.Errors = append(v.Errors, fmt.Sprintf("completeness %.1f%% is below the %.0f%% export threshold", r.Completeness, MinExportCompleteness))
	}

	v.CanExport = len(v.Errors) == 0
	return v
}
