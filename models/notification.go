package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationDeadline    NotificationType = "deadline"     // reporting deadline approaching
	NotificationPlanReview  NotificationType = "plan_review"  // DWSP review due
	NotificationExceedance  NotificationType = "exceedance"   // non-complying test result
	NotificationSubmission  NotificationType = "submission"   // submission state change
	NotificationSystemAlert NotificationType = "system_alert"
)

type Notification struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;index;not null" json:"organizationId"`
	UserID         *uuid.UUID       `gorm:"type:uuid;index" json:"userId,omitempty"` // nil = whole organization
	Type           NotificationType `gorm:"size:30;not null" json:"type"`
	Title          string           `gorm:"size:200;not null" json:"title"`
	Message        string           `gorm:"type:text" json:"message"`
	IsRead         bool             `gorm:"default:false;index" json:"isRead"`
	ExpiresAt      *time.Time       `gorm:"index" json:"expiresAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
