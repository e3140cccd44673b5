package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"puna.nz/compliance/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250710_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Organization{}, &models.SupplyZone{}, &models.User{},
					&models.Asset{}, &models.CompliancePlan{}, &models.WaterQualityTest{})
			},
		},
		{
			ID: "20250722_add_document_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Document{}, &models.DocumentVersion{})
			},
		},
		{
			ID: "20250805_add_reporting_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ComplianceRule{}, &models.ReportSubmission{})
			},
		},
		{
			ID: "20250805_add_audit_and_notifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AuditLog{}, &models.Notification{})
			},
		},
		{
			ID: "20250818_add_plan_review_index",
			Migrate: func(tx *gorm.DB) error {
				// Partial index keeps the review-due worker query cheap.
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_plans_review_due
					ON compliance_plans (next_review_at)
					WHERE deleted_at IS NULL AND status = 'accepted'`).Error
			},
		},
	})
	return m.Migrate()
}
