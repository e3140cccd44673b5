package dwsp

import "testing"

func TestRateRisk(t *testing.T) {
	tests := []struct {
		likelihood  string
		consequence string
		want        string
	}{
		{"rare", "insignificant", "low"},
		{"rare", "moderate", "low"},
		{"unlikely", "minor", "medium"},
		{"possible", "moderate", "high"},
		{"likely", "major", "extreme"},
		{"almost-certain", "catastrophic", "extreme"},
		{"possible", "major", "high"},
		{"Likely", "Major", "extreme"}, // case-insensitive
		{"", "major", "unrated"},
		{"sometimes", "major", "unrated"},
	}
	for _, tc := range tests {
		if got := RateRisk(tc.likelihood, tc.consequence); got != tc.want {
			t.Errorf("RateRisk(%q, %q) = %q, want %q", tc.likelihood, tc.consequence, got, tc.want)
		}
	}
}

func TestRateHazardsKeepsExistingRating(t *testing.T) {
	hazards := []Hazard{
		{Hazard: "nitrate", Likelihood: "possible", Consequence: "moderate"},
		{Hazard: "turbidity", Likelihood: "likely", Consequence: "minor", RiskRating: "low"},
	}
	rated := RateHazards(hazards)
	if rated[0].RiskRating != "high" {
		t.Errorf("unrated hazard rating = %q, want high", rated[0].RiskRating)
	}
	if rated[1].RiskRating != "low" {
		t.Errorf("pre-rated hazard must keep its rating, got %q", rated[1].RiskRating)
	}
}
