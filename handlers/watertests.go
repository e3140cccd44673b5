package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwqar"
)

// WaterTestHandler records and lists water-quality test results.
type WaterTestHandler struct {
	db *gorm.DB
}

func NewWaterTestHandler(db *gorm.DB) *WaterTestHandler {
	return &WaterTestHandler{db: db}
}

// List returns test rows, optionally scoped to a reporting period or
// rule. Period tags are validated against the DWQAR grammar.
func (h *WaterTestHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	q := h.db.Where("organization_id = ?", orgID)
	if tag := r.URL.Query().Get("period"); tag != "" {
		period, err := dwqar.ParsePeriod(tag)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q = q.Where("sampled_at >= ? AND sampled_at < ?", period.Start, period.End)
	}
	if rule := r.URL.Query().Get("rule_id"); rule != "" {
		q = q.Where("rule_id = ?", rule)
	}

	var tests []models.WaterQualityTest
	if err := q.Order("sampled_at DESC").Limit(500).Find(&tests).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tests)
}

// Create stores a test result. A non-complying result raises an
// exceedance notification for the organization.
func (h *WaterTestHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	var test models.WaterQualityTest
	if err := json.NewDecoder(r.Body).Decode(&test); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if test.RuleID == "" || test.Parameter == "" {
		http.Error(w, "ruleId and parameter are required", http.StatusBadRequest)
		return
	}
	test.ID = uuid.Nil
	test.OrganizationID = orgID
	if userID := middleware.GetUserID(r); userID != uuid.Nil {
		test.RecordedByID = &userID
	}

	if err := h.db.Create(&test).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	if !test.Complies {
		note := models.Notification{
			OrganizationID: orgID,
			Type:           models.NotificationExceedance,
			Title:          fmt.Sprintf("Exceedance recorded for %s", test.RuleID),
			Message: fmt.Sprintf("%s result %.3f %s recorded at %s does not comply",
				test.Parameter, test.Value, test.Unit, test.SampledAt.Time().Format("2006-01-02")),
		}
		if err := h.db.Create(&note).Error; err != nil {
			// notification failure must not fail the test write
			log.Printf("exceedance notification failed: %v", err)
		}
	}

	writeJSON(w, http.StatusCreated, test)
}

func (h *WaterTestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	res := h.db.Where("id = ? AND organization_id = ?", id, orgID).Delete(&models.WaterQualityTest{})
	if res.Error != nil {
		writeError(w, res.Error, http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
