package models

import (
	"testing"

	"puna.nz/compliance/pkg/dwsp"
)

func TestPlanContentRoundTrip(t *testing.T) {
	content := dwsp.Content{
		SupplyDescription: &dwsp.SupplyDescription{
			SupplyName: "Ruru Springs",
			SupplyType: "groundwater",
			Population: 850,
		},
		Hazards: []dwsp.Hazard{
			{Hazard: "E. coli ingress", Likelihood: "likely", Consequence: "major"},
		},
	}

	var plan CompliancePlan
	if err := plan.SetContent(content); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	got, err := plan.DecodeContent()
	if err != nil {
		t.Fatalf("DecodeContent: %v", err)
	}

	if got.SupplyDescription == nil || got.SupplyDescription.SupplyName != "Ruru Springs" {
		t.Errorf("supply description lost in round trip: %+v", got.SupplyDescription)
	}
	if len(got.Hazards) != 1 {
		t.Fatalf("hazards = %d, want 1", len(got.Hazards))
	}
	// SetContent derives ratings for unrated hazards on the way in.
	if got.Hazards[0].RiskRating != "extreme" {
		t.Errorf("hazard rating = %q, want extreme (likely x major)", got.Hazards[0].RiskRating)
	}
}

func TestPlanDecodeEmptyContent(t *testing.T) {
	var plan CompliancePlan
	got, err := plan.DecodeContent()
	if err != nil {
		t.Fatalf("DecodeContent on empty payload: %v", err)
	}
	if got.SupplyDescription != nil || len(got.Hazards) != 0 {
		t.Errorf("empty payload decoded to non-zero content: %+v", got)
	}
}
