package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/utils"
)

// OrganizationHandler serves the tenant's own organization record and
// its supply zones. Creating organizations is an out-of-band onboarding
// step done by platform operators, so there is no create endpoint here.
type OrganizationHandler struct {
	db *gorm.DB
}

func NewOrganizationHandler(db *gorm.DB) *OrganizationHandler {
	return &OrganizationHandler{db: db}
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	var org models.Organization
	if err := h.db.Preload("Zones").First(&org, "id = ?", orgID).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

type updateOrgReq struct {
	Name             *string `json:"name"`
	ContactEmail     *string `json:"contactEmail"`
	PopulationServed *int    `json:"populationServed"`
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	var req updateOrgReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.PopulationServed != nil {
		updates["population_served"] = *req.PopulationServed
		updates["size_class"] = sizeClassFor(*req.PopulationServed)
	}
	if len(updates) == 0 {
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	if err := h.db.Model(&models.Organization{}).Where("id = ?", orgID).Updates(updates).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	h.Get(w, r)
}

// sizeClassFor maps population served onto the monitoring size class.
func sizeClassFor(population int) models.SupplySizeClass {
	switch {
	case population > 5000:
		return models.SupplySizeLarge
	case population > 500:
		return models.SupplySizeMedium
	case population > 100:
		return models.SupplySizeSmall
	default:
		return models.SupplySizeVerySmall
	}
}

type zoneReq struct {
	Name     string          `json:"name"`
	Boundary json.RawMessage `json:"boundary"`
}

func (h *OrganizationHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	var req zoneReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "zone name is required", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateBoundary(req.Boundary); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	zone := models.SupplyZone{
		OrganizationID: orgID,
		Name:           req.Name,
		Boundary:       []byte(req.Boundary),
	}
	if err := h.db.Create(&zone).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, zone)
}

func (h *OrganizationHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	var zones []models.SupplyZone
	if err := h.db.Where("organization_id = ?", orgID).Order("name").Find(&zones).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *OrganizationHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	zoneID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid zone id", http.StatusBadRequest)
		return
	}

	res := h.db.Where("id = ? AND organization_id = ?", zoneID, orgID).Delete(&models.SupplyZone{})
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
