package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
)

// AuditHandler exposes the audit trail to org admins. Entries are
// written by the audit middleware and are read-only here.
type AuditHandler struct {
	db *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	q := h.db.Where("organization_id = ?", orgID)
	if res := r.URL.Query().Get("resource"); res != "" {
		q = q.Where("resource = ?", res)
	}
	if action := r.URL.Query().Get("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		q = q.Where("created_at >= ?", t)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = n
		}
	}

	var total int64
	if err := q.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	var entries []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"entries": entries,
	})
}
