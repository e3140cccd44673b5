package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/cache"
	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwsp"
)

// PlanHandler serves drinking water safety plan CRUD, validation and
// submission. Plan lists are cached per organization for ten minutes and
// invalidated on every write.
type PlanHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPlanHandler(db *gorm.DB, c *cache.Cache) *PlanHandler {
	return &PlanHandler{db: db, cache: c}
}

func planListKey(orgID uuid.UUID) string {
	return fmt.Sprintf("plans:%s:list", orgID)
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	var plans []models.CompliancePlan
	if h.cache.GetJSON(r.Context(), planListKey(orgID), &plans) {
		writeJSON(w, http.StatusOK, plans)
		return
	}

	if err := h.db.Where("organization_id = ?", orgID).Order("updated_at DESC").Find(&plans).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	_ = h.cache.SetJSON(r.Context(), planListKey(orgID), plans, cache.DefaultTTL)
	writeJSON(w, http.StatusOK, plans)
}

type planReq struct {
	Name    string       `json:"name"`
	Content dwsp.Content `json:"content"`
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	var req planReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "plan name is required", http.StatusBadRequest)
		return
	}

	plan := models.CompliancePlan{
		OrganizationID: orgID,
		Name:           req.Name,
		Status:         models.PlanStatusDraft,
	}
	if err := plan.SetContent(req.Content); err != nil {
		http.Error(w, "invalid plan content: "+err.Error(), http.StatusBadRequest)
		return
	}
	if userID := middleware.GetUserID(r); userID != uuid.Nil {
		plan.CreatedByID = &userID
	}

	if err := h.db.Create(&plan).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	_ = h.cache.Delete(r.Context(), planListKey(orgID))
	writeJSON(w, http.StatusCreated, plan)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.load(r)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// Update replaces the content of a draft plan and bumps its version.
// Submitted and accepted plans are immutable.
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	plan, err := h.load(r)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if plan.Status != models.PlanStatusDraft {
		http.Error(w, errPlanNotDraft.Error(), http.StatusConflict)
		return
	}

	var req planReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		plan.Name = req.Name
	}
	if err := plan.SetContent(req.Content); err != nil {
		http.Error(w, "invalid plan content: "+err.Error(), http.StatusBadRequest)
		return
	}
	plan.Version++

	if err := h.db.Save(plan).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	_ = h.cache.Delete(r.Context(), planListKey(plan.OrganizationID))
	writeJSON(w, http.StatusOK, plan)
}

// Validate runs the 12-element check and returns the structured result
// without touching the stored plan.
func (h *PlanHandler) Validate(w http.ResponseWriter, r *http.Request) {
	plan, err := h.load(r)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	content, err := plan.DecodeContent()
	if err != nil {
		http.Error(w, "stored plan content is corrupt: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dwsp.Validate(content))
}

// Submit validates the plan and, when complete, moves it to submitted
// and records a DWSP submission for the current annual period. An
// incomplete plan is rejected with the validation result in the body.
func (h *PlanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	plan, err := h.load(r)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if plan.Status != models.PlanStatusDraft {
		http.Error(w, "plan has already been submitted", http.StatusConflict)
		return
	}

	content, err := plan.DecodeContent()
	if err != nil {
		http.Error(w, "stored plan content is corrupt: "+err.Error(), http.StatusInternalServerError)
		return
	}
	validation := dwsp.Validate(content)
	if !validation.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, validation)
		return
	}

	now := time.Now()
	review := now.AddDate(1, 0, 0) // annual review cycle
	plan.Status = models.PlanStatusSubmitted
	plan.SubmittedAt = &now
	plan.NextReviewAt = &review

	period := fmt.Sprintf("%d-Annual", now.Year())
	userID := middleware.GetUserID(r)
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(plan).Error; err != nil {
			return err
		}
		return upsertSubmission(tx, plan.OrganizationID, models.ReportTypeDWSP, period, userID, "")
	})
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	_ = h.cache.Delete(r.Context(), planListKey(plan.OrganizationID))
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	res := h.db.Where("id = ? AND organization_id = ?", id, orgID).Delete(&models.CompliancePlan{})
	if res.Error != nil {
		writeError(w, res.Error, http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = h.cache.Delete(r.Context(), planListKey(orgID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanHandler) load(r *http.Request) (*models.CompliancePlan, error) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var plan models.CompliancePlan
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}
