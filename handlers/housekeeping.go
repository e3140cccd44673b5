package handlers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"puna.nz/compliance/models"
	"puna.nz/compliance/storage"
)

// documentRetention is how long a soft-deleted document is kept before
// its row and blobs are removed for good.
const documentRetention = 90 * 24 * time.Hour

// HousekeepingWorker runs periodic maintenance: expired notifications
// are purged, soft-deleted documents past retention are hard-deleted
// together with their stored blobs, and overdue plan reviews raise a
// notification.
type HousekeepingWorker struct {
	db       *gorm.DB
	store    storage.Provider
	interval time.Duration
}

func NewHousekeepingWorker(db *gorm.DB, store storage.Provider) *HousekeepingWorker {
	return &HousekeepingWorker{db: db, store: store, interval: time.Hour}
}

func (hw *HousekeepingWorker) Start(ctx context.Context) {
	log.Println("starting housekeeping worker")
	hw.runOnce(ctx)

	ticker := time.NewTicker(hw.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("housekeeping worker stopped")
			return
		case <-ticker.C:
			hw.runOnce(ctx)
		}
	}
}

func (hw *HousekeepingWorker) runOnce(ctx context.Context) {
	hw.purgeExpiredNotifications()
	hw.purgeDeletedDocuments(ctx)
	hw.flagOverdueReviews()
}

func (hw *HousekeepingWorker) purgeExpiredNotifications() {
	res := hw.db.Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&models.Notification{})
	if res.Error != nil {
		log.Printf("housekeeping: notification purge failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("housekeeping: purged %d expired notifications", res.RowsAffected)
	}
}

func (hw *HousekeepingWorker) purgeDeletedDocuments(ctx context.Context) {
	cutoff := time.Now().Add(-documentRetention)

	var docs []models.Document
	err := hw.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Limit(50).Find(&docs).Error
	if err != nil {
		log.Printf("housekeeping: deleted-document lookup failed: %v", err)
		return
	}

	for _, doc := range docs {
		var versions []models.DocumentVersion
		if err := hw.db.Where("document_id = ?", doc.ID).Find(&versions).Error; err != nil {
			log.Printf("housekeeping: version lookup for %s failed: %v", doc.ID, err)
			continue
		}
		blobsGone := true
		for _, v := range versions {
			if err := hw.store.Delete(ctx, v.StorageKey); err != nil {
				log.Printf("housekeeping: blob delete %s failed: %v", v.StorageKey, err)
				blobsGone = false
			}
		}
		if !blobsGone {
			// retried next pass; rows stay until all blobs are gone
			continue
		}
		err := hw.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("document_id = ?", doc.ID).Delete(&models.DocumentVersion{}).Error; err != nil {
				return err
			}
			return tx.Unscoped().Delete(&doc).Error
		})
		if err != nil {
			log.Printf("housekeeping: hard delete of document %s failed: %v", doc.ID, err)
			continue
		}
		log.Printf("housekeeping: hard-deleted document %s (%d versions)", doc.ID, len(versions))
	}
}

func (hw *HousekeepingWorker) flagOverdueReviews() {
	now := time.Now()

	var plans []models.CompliancePlan
	err := hw.db.Where("next_review_at IS NOT NULL AND next_review_at < ? AND status <> ?",
		now, models.PlanStatusArchived).Find(&plans).Error
	if err != nil {
		log.Printf("housekeeping: overdue review lookup failed: %v", err)
		return
	}

	for _, plan := range plans {
		var n int64
		hw.db.Model(&models.Notification{}).
			Where("organization_id = ? AND type = ? AND message LIKE ?",
				plan.OrganizationID, models.NotificationPlanReview, "%"+plan.ID.String()+"%").
			Count(&n)
		if n > 0 {
			continue
		}
		note := models.Notification{
			OrganizationID: plan.OrganizationID,
			Type:           models.NotificationPlanReview,
			Title:          "Safety plan review overdue",
			Message: "The drinking water safety plan \"" + plan.Name +
				"\" (" + plan.ID.String() + ") was due for review on " +
				plan.NextReviewAt.Format("2 January 2006") + ".",
		}
		if err := hw.db.Create(&note).Error; err != nil {
			log.Printf("housekeeping: review notification failed for plan %s: %v", plan.ID, err)
		}
	}
}
