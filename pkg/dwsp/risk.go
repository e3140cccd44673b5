package dwsp

import "strings"

// Likelihood and consequence scales used on hazard entries. Ratings
// follow the 5x5 matrix from the Taumata Arowai plan templates.
var (
	likelihoodScore = map[string]int{
		"rare":           1,
		"unlikely":       2,
		"possible":       3,
		"likely":         4,
		"almost-certain": 5,
	}
	consequenceScore = map[string]int{
		"insignificant": 1,
		"minor":         2,
		"moderate":      3,
		"major":         4,
		"catastrophic":  5,
	}
)

// RateRisk computes the qualitative risk rating for a likelihood and
// consequence pair. Unknown inputs yield "unrated".
func RateRisk(likelihood, consequence string) string {
	l, lok := likelihoodScore[strings.ToLower(strings.TrimSpace(likelihood))]
	c, cok := consequenceScore[strings.ToLower(strings.TrimSpace(consequence))]
	if !lok || !cok {
		return "unrated"
	}

	switch score := l * c; {
	case score >= 15:
		return "extreme"
	case score >= 8:
		return "high"
	case score >= 4:
		return "medium"
	default:
		return "low"
	}
}

// RateHazards fills in RiskRating on every hazard that has not been rated
// yet, returning the updated slice.
func RateHazards(hazards []Hazard) []Hazard {
	for i := range hazards {
		if hazards[i].RiskRating == "" {
			hazards[i].RiskRating = RateRisk(hazards[i].Likelihood, hazards[i].Consequence)
		}
	}
	return hazards
}
