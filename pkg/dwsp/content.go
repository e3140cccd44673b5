package dwsp

// Content is the JSON document stored in a compliance plan's content column.
// Every section is optional while the plan is a draft; the validator decides
// which absences block submission.
type Content struct {
	SupplyDescription      *SupplyDescription  `json:"waterSupplyDescription,omitempty"`
	Hazards                []Hazard            `json:"hazards,omitempty"`
	RiskAssessment         *RiskAssessment     `json:"riskAssessment,omitempty"`
	PreventiveMeasures     []PreventiveMeasure `json:"preventiveMeasures,omitempty"`
	OperationalMonitoring  *MonitoringPlan     `json:"operationalMonitoring,omitempty"`
	VerificationMonitoring *MonitoringPlan     `json:"verificationMonitoring,omitempty"`
	CorrectiveActions      []CorrectiveAction  `json:"correctiveActions,omitempty"`
	MultiBarrier           *MultiBarrier       `json:"multiBarrierApproach,omitempty"`
	EmergencyResponse      *EmergencyResponse  `json:"emergencyResponse,omitempty"`
	ResidualDisinfection   *Disinfection       `json:"residualDisinfection,omitempty"`
	WaterQuantity          *WaterQuantity      `json:"waterQuantity,omitempty"`
	ReviewProcedures       *ReviewProcedures   `json:"reviewProcedures,omitempty"`
}

// SupplyDescription covers element 1.
type SupplyDescription struct {
	SupplyName string `json:"supplyName"`
	SupplyType string `json:"supplyType"` // e.g. "bore", "surface", "roof"
	Population int    `json:"population"`
	Sources    string `json:"sources,omitempty"`
	Treatment  string `json:"treatment,omitempty"`
}

// Hazard is one entry of element 2. RiskRating is derived from likelihood
// and consequence, see RateRisk.
type Hazard struct {
	Hazard      string `json:"hazard"`
	Source      string `json:"source,omitempty"`
	Likelihood  string `json:"likelihood,omitempty"`  // rare..almost-certain
	Consequence string `json:"consequence,omitempty"` // insignificant..catastrophic
	RiskRating  string `json:"riskRating,omitempty"`
}

type RiskAssessment struct {
	Summary     string `json:"summary"`
	Methodology string `json:"methodology,omitempty"`
}

// PreventiveMeasure is one entry of element 4; it should reference the
// hazard it controls.
type PreventiveMeasure struct {
	Measure string `json:"measure"`
	Hazard  string `json:"hazard,omitempty"`
	Barrier string `json:"barrier,omitempty"`
}

// MonitoringPlan backs elements 5 and 6.
type MonitoringPlan struct {
	Summary    string   `json:"summary"`
	Procedures []string `json:"procedures,omitempty"`
}

// CorrectiveAction maps a trigger condition to the response (element 7).
type CorrectiveAction struct {
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
	Owner   string `json:"owner,omitempty"`
}

type MultiBarrier struct {
	Description string `json:"description"`
	Barriers    string `json:"barriers,omitempty"`
}

type EmergencyResponse struct {
	Procedures string `json:"procedures"`
	Contacts   string `json:"contacts,omitempty"`
}

type Disinfection struct {
	Details        string `json:"details"`
	TargetResidual string `json:"targetResidual,omitempty"`
}

type WaterQuantity struct {
	ManagementPlan string `json:"managementPlan"`
}

type ReviewProcedures struct {
	Schedule     string `json:"schedule"`
	LastReviewed string `json:"lastReviewed,omitempty"`
}
