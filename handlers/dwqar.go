package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
	"puna.nz/compliance/pkg/dwqar"
)

// DWQARHandler serves the reporting endpoints: on-demand aggregation,
// export-readiness validation, the Excel download and the submission
// workflow.
type DWQARHandler struct {
	db  *gorm.DB
	agg *AggregationService
}

func NewDWQARHandler(db *gorm.DB, agg *AggregationService) *DWQARHandler {
	return &DWQARHandler{db: db, agg: agg}
}

// Aggregate returns the derived report for the YYYY-Annual or YYYY-Qn
// period in the path.
func (h *DWQARHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Validate returns the export-readiness result for the period.
func (h *DWQARHandler) Validate(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dwqar.ValidateReport(report))
}

// Export renders the DWQAR workbook and streams it for download. The
// generated buffer is re-validated before it leaves the process; a
// corrupt workbook becomes a 500, never a download.
func (h *DWQARHandler) Export(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	if v := dwqar.ValidateReport(report); !v.CanExport {
		writeJSON(w, http.StatusUnprocessableEntity, v)
		return
	}

	buf, err := dwqar.GenerateExcel(report)
	if err != nil {
		http.Error(w, "failed to generate DWQAR workbook: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if check := dwqar.ValidateExport(buf.Bytes()); !check.Valid {
		http.Error(w, fmt.Sprintf("generated workbook failed self-check: %v", check.Errors), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("DWQAR_%s_%s.xlsx", report.PeriodTag, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type submitReq struct {
	ConfirmationID string `json:"confirmationId"`
}

// Submit records a DWQAR submission for the period in the path after
// re-checking export readiness. Resubmitting the same period updates
// the existing record. An empty body is valid; the optional JSON body
// carries only the regulator confirmation reference.
func (h *DWQARHandler) Submit(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	period := mux.Vars(r)["period"]
	if period == "" {
		http.Error(w, "reporting period is required", http.StatusBadRequest)
		return
	}

	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	report, err := h.agg.AggregateReportingPeriod(orgID, period)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if v := dwqar.ValidateReport(report); !v.CanExport {
		writeJSON(w, http.StatusUnprocessableEntity, v)
		return
	}

	userID := middleware.GetUserID(r)
	if err := upsertSubmission(h.db, orgID, models.ReportTypeDWQAR, period, userID, req.ConfirmationID); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	var sub models.ReportSubmission
	if err := h.db.Where("organization_id = ? AND report_type = ? AND reporting_period = ?",
		orgID, models.ReportTypeDWQAR, period).First(&sub).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ListSubmissions returns the organization's submission history.
func (h *DWQARHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)

	q := h.db.Where("organization_id = ?", orgID)
	if t := r.URL.Query().Get("type"); t != "" {
		q = q.Where("report_type = ?", t)
	}

	var subs []models.ReportSubmission
	if err := q.Order("reporting_period DESC").Find(&subs).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// AcknowledgeSubmission records the regulator's confirmation reference.
func (h *DWQARHandler) AcknowledgeSubmission(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.GetOrgID(r)
	id := mux.Vars(r)["id"]

	var req struct {
		ConfirmationID string `json:"confirmationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ConfirmationID == "" {
		http.Error(w, "confirmationId is required", http.StatusBadRequest)
		return
	}

	var sub models.ReportSubmission
	if err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&sub).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if sub.Status != models.SubmissionSubmitted {
		http.Error(w, "only submitted reports can be acknowledged", http.StatusConflict)
		return
	}

	now := time.Now()
	sub.Status = models.SubmissionAcknowledged
	sub.ConfirmationID = req.ConfirmationID
	sub.AcknowledgedAt = &now
	if err := h.db.Save(&sub).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// buildReport parses the period path segment and aggregates. On
// failure it writes the error response and returns ok=false.
func (h *DWQARHandler) buildReport(w http.ResponseWriter, r *http.Request) (dwqar.Report, bool) {
	orgID := middleware.GetOrgID(r)
	tag := mux.Vars(r)["period"]
	if tag == "" {
		http.Error(w, "reporting period is required", http.StatusBadRequest)
		return dwqar.Report{}, false
	}

	report, err := h.agg.AggregateReportingPeriod(orgID, tag)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return dwqar.Report{}, false
	}
	return report, true
}
