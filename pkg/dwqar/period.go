// Package dwqar implements aggregation, export-readiness validation and
// Excel rendering for Drinking Water Quality Assurance Rules reporting.
package dwqar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// periodPattern is the external contract for reporting period tags:
// "2025-Annual" or "2025-Q1".."2025-Q4". Nothing else is accepted.
var periodPattern = regexp.MustCompile(`^(\d{4})-(Annual|Q[1-4])$`)

// Period is a parsed reporting period. Quarter is 0 for annual periods.
// Start is inclusive, End exclusive, both UTC.
type Period struct {
	Tag     string
	Year    int
	Quarter int
	Start   time.Time
	End     time.Time
}

// Annual reports whether the period covers the full calendar year.
func (p Period) Annual() bool { return p.Quarter == 0 }

func (p Period) String() string { return p.Tag }

// ParsePeriod resolves a period tag to its UTC date range. Annual periods
// span the calendar year; quarters span three months from Jan/Apr/Jul/Oct.
func ParsePeriod(tag string) (Period, error) {
	m := periodPattern.FindStringSubmatch(tag)
	if m == nil {
		return Period{}, fmt.Errorf("invalid reporting period %q: want YYYY-Annual or YYYY-Qn", tag)
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid reporting period %q: %w", tag, err)
	}

	p := Period{Tag: tag, Year: year}
	if m[2] == "Annual" {
		p.Start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		p.End = p.Start.AddDate(1, 0, 0)
		return p, nil
	}

	p.Quarter = int(m[2][1] - '0')
	startMonth := time.Month(1 + (p.Quarter-1)*3)
	p.Start = time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	p.End = p.Start.AddDate(0, 3, 0)
	return p, nil
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// SubmissionDeadline is when the report is due with the regulator: annual
// DWQAR reports are due by 31 March of the following year, quarterly
// summaries one month after the quarter closes.
func (p Period) SubmissionDeadline() time.Time {
	if p.Annual() {
		return time.Date(p.Year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	}
	return p.End.AddDate(0, 1, 0)
}
