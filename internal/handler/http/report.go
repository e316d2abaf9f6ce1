package http

import (
	"net/http"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/report"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Payroll(w http.ResponseWriter, r *http.Request)
	JobLabor(w http.ResponseWriter, r *http.Request)
	WorkerHours(w http.ResponseWriter, r *http.Request)
	GPSCompliance(w http.ResponseWriter, r *http.Request)
	PushPayroll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func payrollRequestFromQuery(r *http.Request) report.PayrollReportRequest {
	req := report.PayrollReportRequest{
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
		ReviewedOnly: r.URL.Query().Get("reviewed_only") == "true",
	}
	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		req.JobID = &jobID
	}
	return req
}

// Payroll implements ReportHandler.
func (h *reportHandlerImpl) Payroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GeneratePayrollReport(r.Context(), payrollRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// JobLabor implements ReportHandler.
func (h *reportHandlerImpl) JobLabor(w http.ResponseWriter, r *http.Request) {
	req := report.JobLaborReportRequest{
		JobID:     r.URL.Query().Get("job_id"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.GenerateJobLaborReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WorkerHours implements ReportHandler.
func (h *reportHandlerImpl) WorkerHours(w http.ResponseWriter, r *http.Request) {
	req := report.WorkerHoursReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		req.UserID = &userID
	}

	result, err := h.reportService.GenerateWorkerHoursReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GPSCompliance implements ReportHandler.
func (h *reportHandlerImpl) GPSCompliance(w http.ResponseWriter, r *http.Request) {
	req := report.GPSComplianceReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		req.JobID = &jobID
	}

	result, err := h.reportService.GenerateGPSComplianceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PushPayroll implements ReportHandler.
func (h *reportHandlerImpl) PushPayroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.PushPayrollFeed(r.Context(), payrollRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch pushed", result)
}
