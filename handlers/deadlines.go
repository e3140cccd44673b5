package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwqar"
)

// reminderOffsets are the days-before-deadline marks at which a
// reminder is raised, widest first.
var reminderOffsets = []int{90, 30, 7}

// DeadlineWorker raises reporting-deadline notifications. The annual
// DWQAR for year N is due 31 March N+1; organizations that have not
// submitted get a reminder at each offset.
type DeadlineWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewDeadlineWorker(db *gorm.DB) *DeadlineWorker {
	return &DeadlineWorker{db: db, interval: 6 * time.Hour}
}

// Start runs the check loop until the context is cancelled. An
// immediate first pass runs before the ticker takes over.
func (dw *DeadlineWorker) Start(ctx context.Context) {
	log.Println("starting deadline worker")
	dw.runOnce()

	ticker := time.NewTicker(dw.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("deadline worker stopped")
			return
		case <-ticker.C:
			dw.runOnce()
		}
	}
}

func (dw *DeadlineWorker) runOnce() {
	now := time.Now().UTC()

	// The period whose deadline is next: last year's annual report until
	// 31 March, then the current year's.
	for _, year := range []int{now.Year() - 1, now.Year()} {
		period, err := dwqar.ParsePeriod(fmt.Sprintf("%d-Annual", year))
		if err != nil {
			log.Printf("deadline worker: bad period for year %d: %v", year, err)
			continue
		}
		deadline := period.SubmissionDeadline()
		if deadline.Before(now) {
			continue
		}
		dw.remindForPeriod(period, deadline, now)
	}
}

// activeReminderOffset picks the narrowest reminder mark that covers
// the remaining days, or -1 when the deadline is still beyond the
// widest mark.
func activeReminderOffset(daysLeft int) int {
	offset := -1
	for _, o := range reminderOffsets {
		if daysLeft <= o {
			offset = o
		}
	}
	return offset
}

func (dw *DeadlineWorker) remindForPeriod(period dwqar.Period, deadline time.Time, now time.Time) {
	daysLeft := int(deadline.Sub(now).Hours() / 24)

	offset := activeReminderOffset(daysLeft)
	if offset < 0 {
		return
	}

	// Organizations without a submitted DWQAR for the period.
	var orgs []models.Organization
	err := dw.db.
		Where(`id NOT IN (?)`, dw.db.Model(&models.ReportSubmission{}).
			Select("organization_id").
			Where("report_type = ? AND reporting_period = ? AND status <> ?",
				models.ReportTypeDWQAR, period.Tag, models.SubmissionDraft)).
		Find(&orgs).Error
	if err != nil {
		log.Printf("deadline worker: org lookup failed: %v", err)
		return
	}

	title := fmt.Sprintf("DWQAR %s due in %d days", period.Tag, daysLeft)
	reminded := 0
	for _, org := range orgs {
		if dw.alreadyNotified(org.ID, period.Tag, offset) {
			continue
		}
		note := models.Notification{
			OrganizationID: org.ID,
			Type:           models.NotificationDeadline,
			Title:          title,
			Message: fmt.Sprintf(
				"The annual drinking water quality assurance report for %s has not been submitted. It is due by %s.",
				period.Tag, deadline.Format("2 January 2006")),
			ExpiresAt: &deadline,
		}
		if err := dw.db.Create(&note).Error; err != nil {
			log.Printf("deadline worker: notification for org %s failed: %v", org.ID, err)
			continue
		}
		dw.markNotified(org.ID, period.Tag, offset)
		reminded++
	}
	log.Printf("deadline worker: %s, %d days left, %d of %d pending organizations reminded",
		period.Tag, daysLeft, reminded, len(orgs))
}

// reminderKey tracks which offset marks have fired, stored as audit
// rows so restarts don't re-send reminders.
func reminderKey(period string, offset int) string {
	return fmt.Sprintf("deadline:%s:%d", period, offset)
}

func (dw *DeadlineWorker) alreadyNotified(orgID uuid.UUID, period string, offset int) bool {
	var n int64
	dw.db.Model(&models.AuditLog{}).
		Where("organization_id = ? AND action = ? AND resource_id = ?",
			orgID, "notify", reminderKey(period, offset)).
		Count(&n)
	return n > 0
}

func (dw *DeadlineWorker) markNotified(orgID uuid.UUID, period string, offset int) {
	entry := models.AuditLog{
		OrganizationID: orgID,
		Action:         "notify",
		Resource:       "deadline",
		ResourceID:     reminderKey(period, offset),
	}
	if err := dw.db.Create(&entry).Error; err != nil {
		log.Printf("deadline worker: marker write failed: %v", err)
	}
}
