package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetType classifies a supply component.
type AssetType string

const (
	AssetSource       AssetType = "source"       // bore, intake, spring
	AssetTreatment    AssetType = "treatment"    // plant, dosing, UV
	AssetDistribution AssetType = "distribution" // reservoir, pump station, reticulation
)

// AssetCondition is the last assessed physical condition.
type AssetCondition string

const (
	ConditionGood     AssetCondition = "good"
	ConditionFair     AssetCondition = "fair"
	ConditionPoor     AssetCondition = "poor"
	ConditionCritical AssetCondition = "critical"
)

// Asset is a physical supply component belonging to an organization.
type Asset struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;index;not null" json:"organizationId"`
	SupplyZoneID   *uuid.UUID     `gorm:"type:uuid;index" json:"supplyZoneId,omitempty"`
	Name           string         `gorm:"size:150;not null" json:"name"`
	Type           AssetType      `gorm:"size:20;not null" json:"type"`
	Condition      AssetCondition `gorm:"size:20;default:'good'" json:"condition"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	InstalledAt    *time.Time     `json:"installedAt,omitempty"`
	LastInspected  *time.Time     `json:"lastInspected,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
