package dwsp

import "fmt"

// Validation is the outcome of checking plan content against the 12
// mandatory elements. MissingElements carries the fixed regulatory labels
// of every absent element; Warnings flag sections that are present but
// under-specified and never affect IsValid.
type Validation struct {
	IsValid         bool     `json:"isValid"`
	MissingElements []string `json:"missingElements"`
	Warnings        []string `json:"warnings"`
	Errors          []string `json:"errors"`
}

// Validate checks plan content for element completeness. It is a pure
// function of its input.
//
// Presence rules: object sections count as present when non-nil, even if
// their fields are empty (thin content is a warning). List sections
// (hazards, preventive measures, corrective actions) count as present only
// when they hold at least one entry; an empty list is missing.
func Validate(c Content) Validation {
	v := Validation{
		MissingElements: []string{},
		Warnings:        []string{},
		Errors:          []string{},
	}

	for _, id := range AllElements() {
		if !present(c, id) {
			v.MissingElements = append(v.MissingElements, id.Label())
		}
	}

	v.Warnings = contentWarnings(c)

	v.IsValid = len(v.MissingElements) == 0
	for _, m := range v.MissingElements {
		v.Errors = append(v.Errors, "missing mandatory element: "+m)
	}
	return v
}

func present(c Content, id ElementID) bool {
	switch id {
	case ElementSupplyDescription:
		return c.SupplyDescription != nil
	case ElementHazards:
		return len(c.Hazards) > 0
	case ElementRiskAssessment:
		return c.RiskAssessment != nil
	case ElementPreventiveMeasures:
		return len(c.PreventiveMeasures) > 0
	case ElementOperationalMonitoring:
		return c.OperationalMonitoring != nil
	case ElementVerificationMonitoring:
		return c.VerificationMonitoring != nil
	case ElementCorrectiveActions:
		return len(c.CorrectiveActions) > 0
	case ElementMultiBarrier:
		return c.MultiBarrier != nil
	case ElementEmergencyResponse:
		return c.EmergencyResponse != nil
	case ElementResidualDisinfection:
		return c.ResidualDisinfection != nil
	case ElementWaterQuantity:
		return c.WaterQuantity != nil
	case ElementReviewProcedures:
		return c.ReviewProcedures != nil
	}
	return false
}

// contentWarnings flags sections that exist but are missing detail a
// reviewer would expect. Warnings never block submission.
func contentWarnings(c Content) []string {
	warnings := []string{}

	if sd := c.SupplyDescription; sd != nil {
		if sd.SupplyType == "" {
			warnings = append(warnings, "water supply description has no supply type")
		}
		if sd.Population <= 0 {
			warnings = append(warnings, "water supply description has no population served")
		}
	}

	for i, h := range c.Hazards {
		if h.Likelihood == "" || h.Consequence == "" {
			warnings = append(warnings, fmt.Sprintf("hazard %d (%s) has no likelihood/consequence rating", i+1, h.Hazard))
		}
	}

	for i, pm := range c.PreventiveMeasures {
		if pm.Hazard == "" {
			warnings = append(warnings, fmt.Sprintf("preventive measure %d does not reference a hazard", i+1))
		}
	}

	if om := c.OperationalMonitoring; om != nil && len(om.Procedures) == 0 {
		warnings = append(warnings, "operational monitoring lists no procedures")
	}
	if vm := c.VerificationMonitoring; vm != nil && len(vm.Procedures) == 0 {
		warnings = append(warnings, "verification monitoring lists no procedures")
	}

	for i, ca := range c.CorrectiveActions {
		if ca.Trigger == "" || ca.Action == "" {
			warnings = append(warnings, fmt.Sprintf("corrective action %d is missing a trigger or action", i+1))
		}
	}

	if rp := c.ReviewProcedures; rp != nil && rp.Schedule == "" {
		warnings = append(warnings, "review procedures have no schedule")
	}

	return warnings
}
