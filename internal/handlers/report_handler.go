package handlers

import (
	"fmt"
	"net/http"

	"freight-backend/internal/services"
	"freight-backend/internal/timeutil"
)

// ReportHandler handles the budget calculator and its exports
type ReportHandler struct {
	Reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Budget returns the composed budget report for the date range
// GET /api/reports/budget?start_date=&end_date=
func (h *ReportHandler) Budget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.Reports.Budget(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// BudgetCSV downloads the budget report as CSV
// GET /api/reports/budget/csv?start_date=&end_date=
func (h *ReportHandler) BudgetCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.Reports.BudgetCSV(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("budget-report-%s.csv", timeutil.Today())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// BudgetPDF downloads the budget report as PDF
// GET /api/reports/budget/pdf?start_date=&end_date=
func (h *ReportHandler) BudgetPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.Reports.BudgetPDF(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("budget-report-%s.pdf", timeutil.Today())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
