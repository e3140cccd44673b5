package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puna.nz/compliance/cache"
	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwqar"
)

// DashboardStats is the at-a-glance compliance picture for one
// organization.
type DashboardStats struct {
	PlanCount          int64      `json:"planCount"`
	PlansNeedingReview int64      `json:"plansNeedingReview"`
	TestsThisPeriod    int64      `json:"testsThisPeriod"`
	ExceedancesOpen    int64      `json:"exceedancesOpen"`
	AssetCount         int64      `json:"assetCount"`
	UnreadNotices      int64      `json:"unreadNotices"`
	CurrentPeriod      string     `json:"currentPeriod"`
	NextDeadline       *time.Time `json:"nextDeadline,omitempty"`
	LastSubmission     *string    `json:"lastSubmission,omitempty"`
	GeneratedAt        time.Time  `json:"generatedAt"`
}

// DashboardHandler computes the stats with a cache-aside layer; the
// numbers tolerate a few minutes of staleness.
type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c}
}

func dashboardKey(orgID uuid.UUID) string {
	return fmt.Sprintf("org:%s:dashboard", orgID)
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	var stats DashboardStats
	if h.cache.GetJSON(r.Context(), dashboardKey(orgID), &stats) {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	stats, err := h.compute(orgID)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if err := h.cache.SetJSON(r.Context(), dashboardKey(orgID), stats, 5*time.Minute); err != nil {
		log.Printf("dashboard cache write failed for org %s: %v", orgID, err)
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) compute(orgID uuid.UUID) (DashboardStats, error) {
	now := time.Now().UTC()
	period, err := dwqar.ParsePeriod(fmt.Sprintf("%d-Annual", now.Year()))
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		CurrentPeriod: period.Tag,
		GeneratedAt:   now,
	}
	deadline := period.SubmissionDeadline()
	stats.NextDeadline = &deadline

	type count struct {
		dest  *int64
		query *gorm.DB
	}
	counts := []count{
		{&stats.PlanCount, h.db.Model(&models.CompliancePlan{}).
			Where("organization_id = ?", orgID)},
		{&stats.PlansNeedingReview, h.db.Model(&models.CompliancePlan{}).
			Where("organization_id = ? AND next_review_at IS NOT NULL AND next_review_at < ?", orgID, now)},
		{&stats.TestsThisPeriod, h.db.Model(&models.WaterQualityTest{}).
			Where("organization_id = ? AND sampled_at >= ? AND sampled_at < ?", orgID, period.Start, period.End)},
		{&stats.ExceedancesOpen, h.db.Model(&models.WaterQualityTest{}).
			Where("organization_id = ? AND complies = false AND sampled_at >= ? AND sampled_at < ?", orgID, period.Start, period.End)},
		{&stats.AssetCount, h.db.Model(&models.Asset{}).
			Where("organization_id = ?", orgID)},
		{&stats.UnreadNotices, h.db.Model(&models.Notification{}).
			Where("organization_id = ? AND is_read = false", orgID)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return DashboardStats{}, err
		}
	}

	var last models.ReportSubmission
	err = h.db.Where("organization_id = ? AND status <> ?", orgID, models.SubmissionDraft).
		Order("submitted_at DESC").First(&last).Error
	switch {
	case err == nil:
		s := fmt.Sprintf("%s %s", last.ReportType, last.ReportingPeriod)
		stats.LastSubmission = &s
	case err != gorm.ErrRecordNotFound:
		return DashboardStats{}, err
	}

	return stats, nil
}
