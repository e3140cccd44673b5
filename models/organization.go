package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SupplySizeClass buckets a water supply by population served, which
// drives monitoring frequency under the quality assurance rules.
type SupplySizeClass string

const (
	SupplySizeVerySmall SupplySizeClass = "very_small" // 26-100
	SupplySizeSmall     SupplySizeClass = "small"      // 101-500
	SupplySizeMedium    SupplySizeClass = "medium"     // 501-5000
	SupplySizeLarge     SupplySizeClass = "large"      // 5000+
)

// Organization is a tenant: a registered drinking water supplier. Every
// operational row carries an organization_id and queries are always
// scoped to it.
type Organization struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"size:150;not null" json:"name"`
	SupplyCode       string          `gorm:"size:30;uniqueIndex;not null" json:"supplyCode"` // regulator-issued supply identifier
	SizeClass        SupplySizeClass `gorm:"size:20;default:'small'" json:"sizeClass"`
	PopulationServed int             `gorm:"default:0" json:"populationServed"`
	ContactEmail     string          `gorm:"size:150" json:"contactEmail"`
	IsActive         bool            `gorm:"default:true" json:"isActive"`
	Settings         datatypes.JSON  `gorm:"type:jsonb" json:"settings,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	Users []User       `gorm:"foreignKey:OrganizationID" json:"-"`
	Zones []SupplyZone `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// SupplyZone is a geographic service area of a supply. Boundary holds a
// GeoJSON polygon used for asset containment checks.
type SupplyZone struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;index;not null" json:"organizationId"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Boundary       datatypes.JSON `gorm:"type:jsonb" json:"boundary,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (z *SupplyZone) BeforeCreate(tx *gorm.DB) (err error) {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return
}
