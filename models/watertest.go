package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaterQualityTest is one raw sample result. DWQAR aggregates are always
// recomputed from these rows; nothing derived is persisted.
type WaterQualityTest struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;index:idx_tests_org_sampled;not null" json:"organizationId"`
	AssetID        *uuid.UUID `gorm:"type:uuid;index" json:"assetId,omitempty"`
	RuleID         string     `gorm:"column:rule_id;size:30;index;not null" json:"ruleId"` // e.g. "T1.8-ecol"
	Parameter      string     `gorm:"size:50;not null" json:"parameter"`                   // e.g. "ecol", "pH"
	Value          float64    `gorm:"not null" json:"value"`
	Unit           string     `gorm:"size:20" json:"unit"`
	Complies       bool       `gorm:"default:true" json:"complies"`
	SampledAt      JSONTime   `gorm:"column:sampled_at;index:idx_tests_org_sampled;not null" json:"sampledAt"`
	RecordedByID   *uuid.UUID `gorm:"type:uuid" json:"recordedById,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
