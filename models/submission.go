package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportType distinguishes the regulatory reporting regimes.
type ReportType string

const (
	ReportTypeDWQAR ReportType = "dwqar"
	ReportTypeDWSP  ReportType = "dwsp"
)

// SubmissionStatus is the reporting workflow state.
type SubmissionStatus string

const (
	SubmissionDraft        SubmissionStatus = "draft"
	SubmissionSubmitted    SubmissionStatus = "submitted"
	SubmissionAcknowledged SubmissionStatus = "acknowledged"
)

// ReportSubmission tracks one regulatory submission per organization,
// report type and reporting period. The unique index gives resubmission
// upsert semantics: submitting again for the same period updates the
// existing row (last writer wins) instead of creating a duplicate.
type ReportSubmission struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_submissions_org_type_period;not null" json:"organizationId"`
	ReportType      ReportType       `gorm:"size:20;uniqueIndex:idx_submissions_org_type_period;not null" json:"reportType"`
	ReportingPeriod string           `gorm:"size:20;uniqueIndex:idx_submissions_org_type_period;not null" json:"reportingPeriod"`
	Status          SubmissionStatus `gorm:"size:20;default:'draft'" json:"status"`
	ConfirmationID  string           `gorm:"size:100" json:"confirmationId,omitempty"` // regulator reference once acknowledged
	SubmittedAt     *time.Time       `json:"submittedAt,omitempty"`
	AcknowledgedAt  *time.Time       `json:"acknowledgedAt,omitempty"`
	SubmittedByID   *uuid.UUID       `gorm:"type:uuid" json:"submittedById,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func (s *ReportSubmission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
