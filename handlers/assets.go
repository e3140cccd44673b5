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

// AssetHandler serves CRUD for supply components.
type AssetHandler struct {
	db *gorm.DB
}

func NewAssetHandler(db *gorm.DB) *AssetHandler {
	return &AssetHandler{db: db}
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	q := h.db.Where("organization_id = ?", orgID)
	if t := r.URL.Query().Get("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if zone := r.URL.Query().Get("zone_id"); zone != "" {
		q = q.Where("supply_zone_id = ?", zone)
	}

	var assets []models.Asset
	if err := q.Order("name").Find(&assets).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	var asset models.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if asset.Name == "" || asset.Type == "" {
		http.Error(w, "name and type are required", http.StatusBadRequest)
		return
	}
	asset.ID = uuid.Nil
	asset.OrganizationID = orgID

	// An asset assigned to a zone must actually fall inside it when the
	// zone has a mapped boundary.
	if asset.SupplyZoneID != nil {
		if err := h.checkZoneContainment(orgID, *asset.SupplyZoneID, asset.Latitude, asset.Longitude); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := h.db.Create(&asset).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var asset models.Asset
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&asset).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var existing models.Asset
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&existing).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	var patch models.Asset
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	existing.Name = patch.Name
	existing.Type = patch.Type
	existing.Condition = patch.Condition
	existing.Latitude = patch.Latitude
	existing.Longitude = patch.Longitude
	existing.SupplyZoneID = patch.SupplyZoneID
	existing.InstalledAt = patch.InstalledAt
	existing.LastInspected = patch.LastInspected
	existing.Notes = patch.Notes

	if existing.SupplyZoneID != nil {
		if err := h.checkZoneContainment(orgID, *existing.SupplyZoneID, existing.Latitude, existing.Longitude); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := h.db.Save(&existing).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	res := h.db.Where("id = ? AND organization_id = ?", id, orgID).Delete(&models.Asset{})
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

func (h *AssetHandler) checkZoneContainment(orgID, zoneID uuid.UUID, lat, lng float64) error {
	var zone models.SupplyZone
	if err := h.db.Where("id = ? AND organization_id = ?", zoneID, orgID).First(&zone).Error; err != nil {
		return errUnknownZone
	}
	if len(zone.Boundary) == 0 {
		return nil // unmapped zone accepts any location
	}
	inside, err := utils.BoundaryContains(zone.Boundary, lat, lng)
	if err != nil {
		return err
	}
	if !inside {
		return errOutsideZone
	}
	return nil
}
