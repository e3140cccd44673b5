package dwqar

import (
	"testing"
	"time"
)

func TestParsePeriodAccepted(t *testing.T) {
	tests := []struct {
		tag       string
		year      int
		quarter   int
		start     time.Time
		end       time.Time
	}{
		{"2025-Annual", 2025, 0,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-Q1", 2025, 1,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-Q2", 2025, 2,
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-Q3", 2025, 3,
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-Q4", 2025, 4,
			time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			p, err := ParsePeriod(tc.tag)
			if err != nil {
				t.Fatalf("ParsePeriod(%q) error: %v", tc.tag, err)
			}
			if p.Year != tc.year || p.Quarter != tc.quarter {
				t.Errorf("year/quarter = %d/%d, want %d/%d", p.Year, p.Quarter, tc.year, tc.quarter)
			}
			if !p.Start.Equal(tc.start) {
				t.Errorf("start = %v, want %v", p.Start, tc.start)
			}
			if !p.End.Equal(tc.end) {
				t.Errorf("end = %v, want %v", p.End, tc.end)
			}
		})
	}
}

func TestParsePeriodRejected(t *testing.T) {
	bad := []string{
		"2025-Q5",
		"2025-Q0",
		"25-Annual",
		"2025",
		"2025-annual",
		"2025-q1",
		"2025-Annual ",
		" 2025-Annual",
		"2025-Quarterly",
		"",
	}
	for _, tag := range bad {
		if _, err := ParsePeriod(tag); err == nil {
			t.Errorf("ParsePeriod(%q) accepted, want error", tag)
		}
	}
}

func TestPeriodContains(t *testing.T) {
	p, err := ParsePeriod("2025-Q2")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Contains(time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)) {
		t.Error("mid-quarter date should be inside")
	}
	if !p.Contains(p.Start) {
		t.Error("start is inclusive")
	}
	if p.Contains(p.End) {
		t.Error("end is exclusive")
	}
}

func TestSubmissionDeadline(t *testing.T) {
	annual, _ := ParsePeriod("2024-Annual")
	if got, want := annual.SubmissionDeadline(), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("annual deadline = %v, want %v", got, want)
	}
	q1, _ := ParsePeriod("2025-Q1")
	if got, want := q1.SubmissionDeadline(), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("quarterly deadline = %v, want %v", got, want)
	}
}
