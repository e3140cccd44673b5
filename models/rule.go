package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplianceRule is reference data mirrored from the regulator's DWQAR
// template (RuleIDs sheet). Seeded at startup; the aggregation core
// treats it as a constant lookup and never writes it.
type ComplianceRule struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RuleID                string     `gorm:"column:rule_id;size:30;uniqueIndex;not null" json:"ruleId"`
	Category              string     `gorm:"size:30;not null" json:"category"`
	Parameter             string     `gorm:"size:50" json:"parameter"`
	Description           string     `gorm:"size:255" json:"description"`
	AnnualRequiredSamples int        `gorm:"default:1" json:"annualRequiredSamples"`
	IsActive              bool       `gorm:"default:true" json:"isActive"`
	EffectiveDate         *time.Time `json:"effectiveDate,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (r *ComplianceRule) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
