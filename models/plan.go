package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"puna.nz/compliance/pkg/dwsp"
)

// PlanStatus is the lifecycle of a drinking water safety plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusSubmitted PlanStatus = "submitted"
	PlanStatusAccepted  PlanStatus = "accepted"
	PlanStatusArchived  PlanStatus = "archived"
)

// CompliancePlan is a DWSP document. Content holds the 12-element JSON
// payload (see pkg/dwsp.Content); validation state is derived on demand,
// never stored.
type CompliancePlan struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;index;not null" json:"organizationId"`
	Name           string         `gorm:"size:150;not null" json:"name"`
	Status         PlanStatus     `gorm:"size:20;default:'draft';index" json:"status"`
	Version        int            `gorm:"default:1" json:"version"`
	Content        datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	SubmittedAt    *time.Time     `json:"submittedAt,omitempty"`
	NextReviewAt   *time.Time     `gorm:"index" json:"nextReviewAt,omitempty"`
	CreatedByID    *uuid.UUID     `gorm:"type:uuid" json:"createdById,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *CompliancePlan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if len(p.Content) == 0 {
		p.Content = datatypes.JSON([]byte("{}"))
	}
	return
}

// DecodeContent unmarshals the JSONB payload into the typed plan content.
func (p *CompliancePlan) DecodeContent() (dwsp.Content, error) {
	var c dwsp.Content
	if len(p.Content) == 0 {
		return c, nil
	}
	err := json.Unmarshal(p.Content, &c)
	return c, err
}

// SetContent replaces the JSONB payload, deriving risk ratings for any
// unrated hazards on the way in.
func (p *CompliancePlan) SetContent(c dwsp.Content) error {
	c.Hazards = dwsp.RateHazards(c.Hazards)
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	p.Content = datatypes.JSON(raw)
	return nil
}
