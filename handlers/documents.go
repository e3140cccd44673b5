package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/storage"
)

const maxUploadBytes = 32 << 20 // 32 MiB

// DocumentHandler serves controlled-document upload, download, listing
// and version history. Files live behind the configured storage
// provider; only keys and metadata live in the database.
type DocumentHandler struct {
	db    *gorm.DB
	store storage.Provider
}

func NewDocumentHandler(db *gorm.DB, store storage.Provider) *DocumentHandler {
	return &DocumentHandler{db: db, store: store}
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	q := h.db.Where("organization_id = ?", orgID)
	if cat := r.URL.Query().Get("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var docs []models.Document
	if err := q.Order("updated_at DESC").Find(&docs).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Upload accepts multipart form data with a "file" part plus optional
// title/category fields and stores the blob under the provider.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	category := models.DocumentCategory(r.FormValue("category"))
	if category == "" {
		category = models.DocCategoryGeneral
	}

	docID := uuid.New()
	key := fmt.Sprintf("%s/documents/%s/v1%s", orgID, docID, filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	size, err := h.store.Put(r.Context(), key, contentType, file)
	if err != nil {
		http.Error(w, "storage write failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	doc := models.Document{
		ID:             docID,
		OrganizationID: orgID,
		Title:          title,
		Category:       category,
		Status:         models.DocumentStatusDraft,
		StorageKey:     key,
		FileName:       header.Filename,
		ContentType:    contentType,
		SizeBytes:      size,
		CurrentVersion: 1,
	}
	if userID := middleware.GetUserID(r); userID != uuid.Nil {
		doc.UploadedByID = &userID
	}

	version := models.DocumentVersion{
		DocumentID: docID,
		Version:    1,
		StorageKey: key,
		SizeBytes:  size,
	}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		// best effort: don't leave an orphan blob behind
		if delErr := h.store.Delete(r.Context(), key); delErr != nil {
			log.Printf("orphan blob cleanup failed for %s: %v", key, delErr)
		}
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// UploadVersion adds a new revision to an existing document.
func (h *DocumentHandler) UploadVersion(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var doc models.Document
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&doc).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	next := doc.CurrentVersion + 1
	key := fmt.Sprintf("%s/documents/%s/v%d%s", orgID, doc.ID, next, filepath.Ext(header.Filename))
	size, err := h.store.Put(r.Context(), key, header.Header.Get("Content-Type"), file)
	if err != nil {
		http.Error(w, "storage write failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	version := models.DocumentVersion{
		DocumentID: doc.ID,
		Version:    next,
		StorageKey: key,
		SizeBytes:  size,
		ChangeNote: r.FormValue("changeNote"),
	}
	if userID := middleware.GetUserID(r); userID != uuid.Nil {
		version.UploadedByID = &userID
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&version).Error; err != nil {
			return err
		}
		return tx.Model(&doc).Updates(map[string]interface{}{
			"current_version": next,
			"storage_key":     key,
			"file_name":       header.Filename,
			"size_bytes":      size,
		}).Error
	})
	if err != nil {
		if delErr := h.store.Delete(r.Context(), key); delErr != nil {
			log.Printf("orphan blob cleanup failed for %s: %v", key, delErr)
		}
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, version)
}

// Download streams the current version of the document.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var doc models.Document
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&doc).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	rc, err := h.store.Get(r.Context(), doc.StorageKey)
	if err != nil {
		http.Error(w, "stored file unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	if doc.ContentType != "" {
		w.Header().Set("Content-Type", doc.ContentType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("document %s download interrupted: %v", doc.ID, err)
	}
}

// Versions lists the revision history of a document.
func (h *DocumentHandler) Versions(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var doc models.Document
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&doc).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	var versions []models.DocumentVersion
	if err := h.db.Where("document_id = ?", doc.ID).Order("version DESC").Find(&versions).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// Delete soft-deletes the document; the housekeeping worker hard-deletes
// the row and blobs after the retention window.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	res := h.db.Where("id = ? AND organization_id = ?", id, orgID).Delete(&models.Document{})
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

// UpdateStatus moves a document through its lifecycle.
func (h *DocumentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var req struct {
		Status models.DocumentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case models.DocumentStatusDraft, models.DocumentStatusApproved, models.DocumentStatusArchived:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	res := h.db.Model(&models.Document{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Updates(map[string]interface{}{"status": req.Status, "updated_at": time.Now()})
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
