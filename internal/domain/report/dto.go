package report

import (
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL REPORT
// ========================================

type PayrollReportRequest struct {
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD
	JobID        *string `json:"job_id,omitempty"`
	ReviewedOnly bool    `json:"reviewed_only"`
}

func (r *PayrollReportRequest) Validate() error {
	return validateDateRange(r.StartDate, r.EndDate)
}

type PayrollReport struct {
	PeriodStart  string  `json:"period_start"`
	PeriodEnd    string  `json:"period_end"`
	GeneratedAt  string  `json:"generated_at"`
	ReviewedOnly bool    `json:"reviewed_only"`
	TotalHours   float64 `json:"total_hours"`
	TotalCost    float64 `json:"total_cost"`

	Rows []PayrollRow `json:"rows"`
}

type PayrollRow struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	TotalHours float64 `json:"total_hours"`
	BurdenRate float64 `json:"burden_rate"`
	TotalCost  float64 `json:"total_cost"`
}

// PayrollFeedResponse reports what was handed to the external payroll provider.
type PayrollFeedResponse struct {
	BatchID     string  `json:"batch_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	RowCount    int     `json:"row_count"`
	TotalHours  float64 `json:"total_hours"`
	TotalCost   float64 `json:"total_cost"`
	PushedAt    string  `json:"pushed_at"`
}

// ========================================
// JOB LABOR SUMMARY
// ========================================

type JobLaborReportRequest struct {
	JobID     string `json:"job_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *JobLaborReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}
	if err := validateDateRange(r.StartDate, r.EndDate); err != nil {
		if rangeErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, rangeErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JobLaborReport struct {
	JobID       string  `json:"job_id"`
	JobCode     string  `json:"job_code"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	GeneratedAt string  `json:"generated_at"`
	TotalHours  float64 `json:"total_hours"`

	Activities []JobLaborRow `json:"activities"`
}

type JobLaborRow struct {
	LaborActivityID string  `json:"labor_activity_id"`
	ActivityName    string  `json:"activity_name"`
	TradeName       string  `json:"trade_name"`
	TotalHours      float64 `json:"total_hours"`
	WorkerCount     int     `json:"worker_count"`
}

// ========================================
// WORKER HOURS REPORT
// ========================================

type WorkerHoursReportRequest struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
}

func (r *WorkerHoursReportRequest) Validate() error {
	return validateDateRange(r.StartDate, r.EndDate)
}

type WorkerHoursReport struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Workers []WorkerHoursSummary `json:"workers"`
}

type WorkerHoursSummary struct {
	UserID     string         `json:"user_id"`
	UserName   string         `json:"user_name"`
	TotalHours float64        `json:"total_hours"`
	ByJob      []JobHoursRow  `json:"by_job"`
	ByDate     []DateHoursRow `json:"by_date"`
}

type JobHoursRow struct {
	JobID      string  `json:"job_id"`
	JobCode    string  `json:"job_code"`
	TotalHours float64 `json:"total_hours"`
}

type DateHoursRow struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
}

// WorkerHoursRow is the flat aggregation row the store returns; the service
// folds it into per-worker summaries.
type WorkerHoursRow struct {
	UserID     string
	UserName   string
	JobID      string
	JobCode    string
	Date       string
	TotalHours float64
}

// ========================================
// GPS COMPLIANCE REPORT
// ========================================

type GPSComplianceReportRequest struct {
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
	JobID     *string `json:"job_id,omitempty"`
}

func (r *GPSComplianceReportRequest) Validate() error {
	return validateDateRange(r.StartDate, r.EndDate)
}

// TierLabels carries the display label for each compliance tier; TierOrder
// lists tiers most severe first.
var TierLabels = map[utils.ComplianceTier]string{
	utils.TierFraudRisk:      "Fraud Risk (5+ mi)",
	utils.TierMajorViolation: "Major Violations (2-5 mi)",
	utils.TierMinorViolation: "Minor Violations (0.5-2 mi)",
	utils.TierCompliant:      "Compliant (0-0.5 mi)",
}

var TierOrder = []utils.ComplianceTier{
	utils.TierFraudRisk,
	utils.TierMajorViolation,
	utils.TierMinorViolation,
	utils.TierCompliant,
}

type GPSComplianceReport struct {
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	GeneratedAt   string `json:"generated_at"`
	TotalSessions int    `json:"total_sessions"`

	Groups []ComplianceGroup `json:"groups"`
}

type ComplianceGroup struct {
	Tier     string          `json:"tier"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
	Sessions []ComplianceRow `json:"sessions"`
}

// ComplianceRow is one GPS-bearing session. WorstDistanceMi is the larger of
// the two recorded deviations and drives tier grouping.
type ComplianceRow struct {
	SessionID          string   `json:"session_id"`
	UserID             string   `json:"user_id"`
	UserName           string   `json:"user_name"`
	JobID              string   `json:"job_id"`
	JobCode            string   `json:"job_code"`
	ClockIn            string   `json:"clock_in"`
	ClockInDistanceMi  *float64 `json:"clock_in_distance_mi,omitempty"`
	ClockOutDistanceMi *float64 `json:"clock_out_distance_mi,omitempty"`
	WorstDistanceMi    float64  `json:"worst_distance_mi"`
}

func validateDateRange(startDate, endDate string) error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(startDate)
	if validator.IsEmpty(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(endDate)
	if validator.IsEmpty(endDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
