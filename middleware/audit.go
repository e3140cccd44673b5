package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puna.nz/compliance/models"
)

// actionForMethod maps HTTP verbs onto audit actions.
var actionForMethod = map[string]string{
	http.MethodPost:   "create",
	http.MethodPut:    "update",
	http.MethodPatch:  "update",
	http.MethodDelete: "delete",
}

// statusRecorder captures the response code for the audit row.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Auditor writes an AuditLog row for every mutating request. Reads are
// not audited. Failures to write the audit row are logged, never
// surfaced to the client.
type Auditor struct {
	db *gorm.DB
}

func NewAuditor(db *gorm.DB) *Auditor {
	return &Auditor{db: db}
}

func (a *Auditor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action, mutating := actionForMethod[r.Method]
		if !mutating {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		orgID := GetOrgID(r)
		if orgID == uuid.Nil {
			return // unauthenticated routes are not audited
		}

		resource, resourceID := resourceFromPath(r.URL.Path)
		entry := models.AuditLog{
			OrganizationID: orgID,
			Action:         action,
			Resource:       resource,
			ResourceID:     resourceID,
			Method:         r.Method,
			Path:           r.URL.Path,
			StatusCode:     rec.status,
		}
		if userID := GetUserID(r); userID != uuid.Nil {
			entry.UserID = &userID
		}
		if err := a.db.Create(&entry).Error; err != nil {
			log.Printf("audit log write failed for %s %s: %v", r.Method, r.URL.Path, err)
		}
	})
}

// resourceFromPath derives (resource, id) from an API path like
// /api/v1/plans/{uuid}/validate.
func resourceFromPath(path string) (string, string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	// drop the /api/v1 prefix
	for len(parts) > 0 && (parts[0] == "api" || parts[0] == "v1") {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "", ""
	}
	resource := parts[0]
	if len(parts) > 1 {
		if _, err := uuid.Parse(parts[1]); err == nil {
			return resource, parts[1]
		}
	}
	return resource, ""
}
