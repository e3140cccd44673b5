package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
)

// NotificationHandler lists and acknowledges in-app notifications.
// A notification with a nil user id addresses the whole organization.
type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	userID := middleware.GetUserID(r)

	q := h.db.Where("organization_id = ? AND (user_id IS NULL OR user_id = ?)", orgID, userID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())
	if r.URL.Query().Get("unread") == "true" {
		q = q.Where("is_read = false")
	}

	var notes []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&notes).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	userID := middleware.GetUserID(r)
	id := mux.Vars(r)["id"]

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND organization_id = ? AND (user_id IS NULL OR user_id = ?)", id, orgID, userID).
		Update("is_read", true)
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

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	userID := middleware.GetUserID(r)

	err := h.db.Model(&models.Notification{}).
		Where("organization_id = ? AND (user_id IS NULL OR user_id = ?) AND is_read = false", orgID, userID).
		Update("is_read", true).Error
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
