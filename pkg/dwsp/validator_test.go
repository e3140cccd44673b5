package dwsp

import (
	"slices"
	"strings"
	"testing"
)

// completeContent returns plan content with every element populated.
func completeContent() Content {
	return Content{
		SupplyDescription: &SupplyDescription{
			SupplyName: "Ruru Township Supply",
			SupplyType: "bore",
			Population: 420,
		},
		Hazards: []Hazard{
			{Hazard: "E. coli ingress", Source: "shallow bore", Likelihood: "possible", Consequence: "major"},
		},
		RiskAssessment:     &RiskAssessment{Summary: "5x5 matrix applied to all hazards"},
		PreventiveMeasures: []PreventiveMeasure{{Measure: "bore head security", Hazard: "E. coli ingress"}},
		OperationalMonitoring: &MonitoringPlan{
			Summary:    "daily FAC checks",
			Procedures: []string{"measure FAC at treatment outlet"},
		},
		VerificationMonitoring: &MonitoringPlan{
			Summary:    "weekly E. coli sampling",
			Procedures: []string{"grab sample at first consumer tap"},
		},
		CorrectiveActions:    []CorrectiveAction{{Trigger: "E. coli detected", Action: "issue boil water notice"}},
		MultiBarrier:         &MultiBarrier{Description: "source protection, chlorination, reticulation residual"},
		EmergencyResponse:    &EmergencyResponse{Procedures: "notify Taumata Arowai within 24h"},
		ResidualDisinfection: &Disinfection{Details: "FAC 0.2 mg/L minimum", TargetResidual: "0.2"},
		WaterQuantity:        &WaterQuantity{ManagementPlan: "reservoir holds 48h demand"},
		ReviewProcedures:     &ReviewProcedures{Schedule: "annual"},
	}
}

func TestValidateCompletePlan(t *testing.T) {
	v := Validate(completeContent())
	if !v.IsValid {
		t.Fatalf("expected valid plan, missing: %v", v.MissingElements)
	}
	if len(v.MissingElements) != 0 {
		t.Errorf("expected no missing elements, got %v", v.MissingElements)
	}
	if len(v.Errors) != 0 {
		t.Errorf("expected no errors, got %v", v.Errors)
	}
}

func TestValidateEmptyPlan(t *testing.T) {
	v := Validate(Content{})
	if v.IsValid {
		t.Fatal("empty plan must not be valid")
	}
	if len(v.MissingElements) != 12 {
		t.Fatalf("expected 12 missing elements, got %d: %v", len(v.MissingElements), v.MissingElements)
	}
	// Labels come back in regulatory order.
	if v.MissingElements[0] != "1. Water Supply Description" {
		t.Errorf("first missing element = %q", v.MissingElements[0])
	}
	if v.MissingElements[11] != "12. Review Procedures" {
		t.Errorf("last missing element = %q", v.MissingElements[11])
	}
}

func TestValidateSingleMissingElement(t *testing.T) {
	remove := []struct {
		name  string
		strip func(*Content)
		label string
	}{
		{"supply description", func(c *Content) { c.SupplyDescription = nil }, "1. Water Supply Description"},
		{"hazards", func(c *Content) { c.Hazards = nil }, "2. Hazard Identification"},
		{"risk assessment", func(c *Content) { c.RiskAssessment = nil }, "3. Risk Assessment"},
		{"preventive measures", func(c *Content) { c.PreventiveMeasures = nil }, "4. Preventive Measures"},
		{"operational monitoring", func(c *Content) { c.OperationalMonitoring = nil }, "5. Operational Monitoring"},
		{"verification monitoring", func(c *Content) { c.VerificationMonitoring = nil }, "6. Verification Monitoring"},
		{"corrective actions", func(c *Content) { c.CorrectiveActions = nil }, "7. Corrective Actions"},
		{"multi barrier", func(c *Content) { c.MultiBarrier = nil }, "8. Multi-Barrier Approach"},
		{"emergency response", func(c *Content) { c.EmergencyResponse = nil }, "9. Emergency Response"},
		{"residual disinfection", func(c *Content) { c.ResidualDisinfection = nil }, "10. Residual Disinfection"},
		{"water quantity", func(c *Content) { c.WaterQuantity = nil }, "11. Water Quantity"},
		{"review procedures", func(c *Content) { c.ReviewProcedures = nil }, "12. Review Procedures"},
	}

	for _, tc := range remove {
		t.Run(tc.name, func(t *testing.T) {
			c := completeContent()
			tc.strip(&c)
			v := Validate(c)
			if v.IsValid {
				t.Fatal("plan with a missing element must not be valid")
			}
			if len(v.MissingElements) != 1 {
				t.Fatalf("expected exactly one missing element, got %v", v.MissingElements)
			}
			if v.MissingElements[0] != tc.label {
				t.Errorf("missing element = %q, want %q", v.MissingElements[0], tc.label)
			}
		})
	}
}

func TestValidateEmptyListIsMissing(t *testing.T) {
	c := completeContent()
	c.Hazards = []Hazard{}
	v := Validate(c)
	if v.IsValid {
		t.Fatal("plan with empty hazards list must not be valid")
	}
	if !slices.Contains(v.MissingElements, "2. Hazard Identification") {
		t.Errorf("expected hazard identification reported missing, got %v", v.MissingElements)
	}
}

func TestValidateWarningsDoNotAffectValidity(t *testing.T) {
	c := completeContent()
	c.SupplyDescription.SupplyType = ""
	c.SupplyDescription.Population = 0
	c.Hazards[0].Likelihood = ""

	v := Validate(c)
	if !v.IsValid {
		t.Fatalf("under-specified but present sections must stay valid, missing: %v", v.MissingElements)
	}
	if len(v.Warnings) == 0 {
		t.Fatal("expected warnings for thin supply description and unrated hazard")
	}

	var sawSupplyType, sawPopulation, sawHazard bool
	for _, w := range v.Warnings {
		if strings.Contains(w, "supply type") {
			sawSupplyType = true
		}
		if strings.Contains(w, "population") {
			sawPopulation = true
		}
		if strings.Contains(w, "likelihood/consequence") {
			sawHazard = true
		}
	}
	if !sawSupplyType || !sawPopulation || !sawHazard {
		t.Errorf("warnings incomplete: %v", v.Warnings)
	}
}

func TestValidateEmptyObjectSectionIsPresent(t *testing.T) {
	c := completeContent()
	c.RiskAssessment = &RiskAssessment{}
	v := Validate(c)
	if slices.Contains(v.MissingElements, "3. Risk Assessment") {
		t.Error("empty object section must count as present")
	}
}

func TestElementLabels(t *testing.T) {
	if got := ElementHazards.Label(); got != "2. Hazard Identification" {
		t.Errorf("ElementHazards.Label() = %q", got)
	}
	if got := len(AllElements()); got != 12 {
		t.Errorf("AllElements() length = %d", got)
	}
}
