package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records every mutating API request: who did what to which
// resource. Written by the audit middleware, read-only afterwards.
type AuditLog struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;index;not null" json:"organizationId"`
	UserID         *uuid.UUID     `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action         string         `gorm:"size:50;not null" json:"action"` // create/update/delete/submit/export
	Resource       string         `gorm:"size:50;index;not null" json:"resource"`
	ResourceID     string         `gorm:"size:100" json:"resourceId,omitempty"`
	Method         string         `gorm:"size:10" json:"method"`
	Path           string         `gorm:"size:255" json:"path"`
	StatusCode     int            `json:"statusCode"`
	Detail         datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
