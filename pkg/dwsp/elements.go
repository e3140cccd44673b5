// Package dwsp implements validation of Drinking Water Safety Plan content
// against the 12 mandatory elements required by Taumata Arowai.
package dwsp

// ElementID identifies one of the 12 mandatory plan elements. The numeric
// value matches the regulatory ordinal (1-12).
type ElementID int

const (
	ElementSupplyDescription ElementID = iota + 1
	ElementHazards
	ElementRiskAssessment
	ElementPreventiveMeasures
	ElementOperationalMonitoring
	ElementVerificationMonitoring
	ElementCorrectiveActions
	ElementMultiBarrier
	ElementEmergencyResponse
	ElementResidualDisinfection
	ElementWaterQuantity
	ElementReviewProcedures
)

// elementLabels are the regulatory display labels. Callers match on
// substrings of these, so the wording and numbering must not change.
var elementLabels = map[ElementID]string{
	ElementSupplyDescription:      "1. Water Supply Description",
	ElementHazards:                "2. Hazard Identification",
	ElementRiskAssessment:         "3. Risk Assessment",
	ElementPreventiveMeasures:     "4. Preventive Measures",
	ElementOperationalMonitoring:  "5. Operational Monitoring",
	ElementVerificationMonitoring: "6. Verification Monitoring",
	ElementCorrectiveActions:      "7. Corrective Actions",
	ElementMultiBarrier:           "8. Multi-Barrier Approach",
	ElementEmergencyResponse:      "9. Emergency Response",
	ElementResidualDisinfection:   "10. Residual Disinfection",
	ElementWaterQuantity:          "11. Water Quantity",
	ElementReviewProcedures:       "12. Review Procedures",
}

// AllElements lists the 12 element IDs in regulatory order.
func AllElements() []ElementID {
	ids := make([]ElementID, 0, 12)
	for id := ElementSupplyDescription; id <= ElementReviewProcedures; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Label returns the fixed regulatory label for an element, e.g.
// "2. Hazard Identification". Unknown IDs return "".
func (e ElementID) Label() string {
	return elementLabels[e]
}
