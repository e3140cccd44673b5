package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles within an organization. Compliance managers own plans and
// submissions, operators record test results, viewers are read-only.
const (
	RoleOrgAdmin          = "org_admin"
	RoleComplianceManager = "compliance_manager"
	RoleOperator          = "operator"
	RoleViewer            = "viewer"
)

type User struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;index;not null" json:"organizationId"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Name           string        `gorm:"size:100;not null" json:"name"`
	Email          string        `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash   string        `gorm:"size:255;not null" json:"-"`
	Role           string        `gorm:"size:30;default:'viewer'" json:"role"`
	IsActive       bool          `gorm:"default:true" json:"isActive"`
	LastLoginAt    *time.Time    `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// CanManageCompliance reports whether the role may create or submit
// compliance plans and regulatory reports.
func (u *User) CanManageCompliance() bool {
	return u.Role == RoleOrgAdmin || u.Role == RoleComplianceManager
}

// CanRecordTests reports whether the role may write water-quality test
// results.
func (u *User) CanRecordTests() bool {
	return u.Role != RoleViewer
}
