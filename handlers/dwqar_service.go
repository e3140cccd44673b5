package handlers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwqar"
)

// AggregationService builds DWQAR aggregate reports from raw test rows.
// Aggregates are recomputed on every call and never persisted; only the
// ReportSubmission row carries reporting workflow state.
type AggregationService struct {
	db *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{db: db}
}

// AggregateReportingPeriod pulls the organization's samples inside the
// period boundary and folds them into an aggregate report. The required
// sample counts come from the seeded rule reference table, falling back
// to the static mirror when the table is empty.
func (s *AggregationService) AggregateReportingPeriod(orgID uuid.UUID, tag string) (dwqar.Report, error) {
	period, err := dwqar.ParsePeriod(tag)
	if err != nil {
		return dwqar.Report{}, err
	}

	var org models.Organization
	if err := s.db.First(&org, "id = ?", orgID).Error; err != nil {
		return dwqar.Report{}, fmt.Errorf("organization %s: %w", orgID, err)
	}

	var rows []models.WaterQualityTest
	if err := s.db.
		Where("organization_id = ? AND sampled_at >= ? AND sampled_at < ?", orgID, period.Start, period.End).
		Order("sampled_at").
		Find(&rows).Error; err != nil {
		return dwqar.Report{}, fmt.Errorf("load samples for %s: %w", tag, err)
	}

	samples := make([]dwqar.Sample, 0, len(rows))
	for _, row := range rows {
		component := ""
		if row.AssetID != nil {
			component = row.AssetID.String()
		}
		samples = append(samples, dwqar.Sample{
			RuleID:            row.RuleID,
			SupplyComponentID: component,
			Parameter:         row.Parameter,
			Value:             row.Value,
			Unit:              row.Unit,
			SampledAt:         row.SampledAt.Time().UTC().Format(time.RFC3339),
			Complies:          row.Complies,
		})
	}

	required, err := s.requiredSamples()
	if err != nil {
		return dwqar.Report{}, err
	}
	return dwqar.Aggregate(orgID, period, samples, required), nil
}

// requiredSamples loads the rule reference table. The static mirror in
// pkg/dwqar covers a database that has not been seeded yet.
func (s *AggregationService) requiredSamples() (map[string]int, error) {
	var rules []models.ComplianceRule
	if err := s.db.Where("is_active = true").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("load compliance rules: %w", err)
	}
	if len(rules) == 0 {
		return dwqar.DefaultRules(), nil
	}

	required := make(map[string]int, len(rules))
	for _, r := range rules {
		required[r.RuleID] = r.AnnualRequiredSamples
	}
	return required, nil
}

// upsertSubmission records a submission for (org, type, period). The
// unique index on the triple makes resubmission idempotent: the existing
// row is updated in place, last writer wins.
func upsertSubmission(db *gorm.DB, orgID uuid.UUID, reportType models.ReportType, period string, userID uuid.UUID, confirmationID string) error {
	now := time.Now()
	sub := models.ReportSubmission{
		OrganizationID:  orgID,
		ReportType:      reportType,
		ReportingPeriod: period,
		Status:          models.SubmissionSubmitted,
		ConfirmationID:  confirmationID,
		SubmittedAt:     &now,
	}
	if userID != uuid.Nil {
		sub.SubmittedByID = &userID
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "organization_id"}, {Name: "report_type"}, {Name: "reporting_period"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "confirmation_id", "submitted_at", "submitted_by_id", "updated_at",
		}),
	}).Create(&sub).Error
}
