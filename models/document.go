package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentStatus is the controlled-document lifecycle.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusArchived DocumentStatus = "archived"
)

// DocumentCategory buckets controlled documents for retention rules.
type DocumentCategory string

const (
	DocCategoryProcedure  DocumentCategory = "procedure"
	DocCategoryTestReport DocumentCategory = "test_report"
	DocCategoryIncident   DocumentCategory = "incident"
	DocCategoryRegulatory DocumentCategory = "regulatory"
	DocCategoryGeneral    DocumentCategory = "general"
)

// Document is a controlled document with version history. StorageKey is
// the object key under the configured storage provider; the current
// version's key is mirrored here for cheap downloads.
type Document struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;index;not null" json:"organizationId"`
	Title          string           `gorm:"size:200;not null" json:"title"`
	Category       DocumentCategory `gorm:"size:30;default:'general';index" json:"category"`
	Status         DocumentStatus   `gorm:"size:20;default:'draft'" json:"status"`
	StorageKey     string           `gorm:"size:500;not null" json:"-"`
	FileName       string           `gorm:"size:255;not null" json:"fileName"`
	ContentType    string           `gorm:"size:100" json:"contentType"`
	SizeBytes      int64            `json:"sizeBytes"`
	CurrentVersion int              `gorm:"default:1" json:"currentVersion"`
	Metadata       datatypes.JSON   `gorm:"type:jsonb" json:"metadata,omitempty"`
	UploadedByID   *uuid.UUID       `gorm:"type:uuid" json:"uploadedById,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	Versions []DocumentVersion `gorm:"foreignKey:DocumentID" json:"versions,omitempty"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// DocumentVersion is an immutable snapshot of one uploaded revision.
type DocumentVersion struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"documentId"`
	Version      int        `gorm:"not null" json:"version"`
	StorageKey   string     `gorm:"size:500;not null" json:"-"`
	SizeBytes    int64      `json:"sizeBytes"`
	ChangeNote   string     `gorm:"size:500" json:"changeNote,omitempty"`
	UploadedByID *uuid.UUID `gorm:"type:uuid" json:"uploadedById,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (v *DocumentVersion) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
