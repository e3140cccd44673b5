package handlers

import "errors"

// Sentinel errors surfaced to clients with a 4xx status.
var (
	errUnknownZone  = errors.New("supply zone does not exist for this organization")
	errOutsideZone  = errors.New("asset location falls outside the supply zone boundary")
	errPlanNotDraft = errors.New("only draft plans can be edited")
)
