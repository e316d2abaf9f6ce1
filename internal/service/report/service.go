package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/report"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/review"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/payrollfeed"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	reviewservice "github.com/sitecrew/labortrack-backend-go/internal/service/review"
)

type ReportServiceImpl struct {
	reportRepo    report.ReportRepository
	userRepo      user.UserRepository
	jobRepo       job.JobRepository
	reviewService reviewservice.ReviewService
	feedClient    *payrollfeed.Client
}

// NewReportService creates a new report service. feedClient may be nil when
// no external payroll provider is configured.
func NewReportService(
	reportRepo report.ReportRepository,
	userRepo user.UserRepository,
	jobRepo job.JobRepository,
	reviewService reviewservice.ReviewService,
	feedClient *payrollfeed.Client,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:    reportRepo,
		userRepo:      userRepo,
		jobRepo:       jobRepo,
		reviewService: reviewService,
		feedClient:    feedClient,
	}
}

// GeneratePayrollReport implements report.ReportService.
func (s *ReportServiceImpl) GeneratePayrollReport(ctx context.Context, req report.PayrollReportRequest) (report.PayrollReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.PayrollReport{}, err
	}

	nowUTC := time.Now().UTC()

	// Effective time already reconciles foreman corrections against worker
	// submissions; the reviewed-only switch flows straight through.
	records, err := s.reviewService.GetEffectiveTime(ctx, review.EffectiveTimeFilter{
		JobID:        req.JobID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ReviewedOnly: req.ReviewedOnly,
	})
	if err != nil {
		return report.PayrollReport{}, err
	}

	// Fold per worker. Records arrive ordered by worker name, so first
	// appearance keeps the rows alphabetical.
	rowIndex := make(map[string]int)
	rows := make([]report.PayrollRow, 0)
	for _, rec := range records {
		idx, ok := rowIndex[rec.UserID]
		if !ok {
			rows = append(rows, report.PayrollRow{
				UserID:   rec.UserID,
				UserName: rec.UserName,
			})
			idx = len(rows) - 1
			rowIndex[rec.UserID] = idx
		}
		rows[idx].TotalHours += rec.Hours
	}

	totalHours := 0.0
	totalCost := 0.0
	for i := range rows {
		workerData, err := s.userRepo.GetByID(ctx, rows[i].UserID)
		if err != nil {
			return report.PayrollReport{}, fmt.Errorf("failed to get worker rate: %w", err)
		}

		rows[i].TotalHours = math.Round(rows[i].TotalHours*100) / 100
		rows[i].BurdenRate = workerData.BurdenRate
		rows[i].TotalCost = math.Round(rows[i].TotalHours*workerData.BurdenRate*100) / 100

		totalHours += rows[i].TotalHours
		totalCost += rows[i].TotalCost
	}

	return report.PayrollReport{
		PeriodStart:  req.StartDate,
		PeriodEnd:    req.EndDate,
		GeneratedAt:  nowUTC.Format(time.RFC3339),
		ReviewedOnly: req.ReviewedOnly,
		TotalHours:   math.Round(totalHours*100) / 100,
		TotalCost:    math.Round(totalCost*100) / 100,
		Rows:         rows,
	}, nil
}

// GenerateJobLaborReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateJobLaborReport(ctx context.Context, req report.JobLaborReportRequest) (report.JobLaborReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.JobLaborReport{}, err
	}

	nowUTC := time.Now().UTC()

	jobData, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return report.JobLaborReport{}, err
		}
		return report.JobLaborReport{}, fmt.Errorf("failed to get job: %w", err)
	}

	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return report.JobLaborReport{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return report.JobLaborReport{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	activities, err := s.reportRepo.GetJobLaborSummary(ctx, req.JobID, from, to)
	if err != nil {
		return report.JobLaborReport{}, fmt.Errorf("failed to get job labor data: %w", err)
	}

	totalHours := 0.0
	for _, row := range activities {
		totalHours += row.TotalHours
	}

	return report.JobLaborReport{
		JobID:       jobData.ID,
		JobCode:     jobData.Code,
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		GeneratedAt: nowUTC.Format(time.RFC3339),
		TotalHours:  math.Round(totalHours*100) / 100,
		Activities:  activities,
	}, nil
}

// GenerateWorkerHoursReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateWorkerHoursReport(ctx context.Context, req report.WorkerHoursReportRequest) (report.WorkerHoursReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.WorkerHoursReport{}, err
	}

	nowUTC := time.Now().UTC()

	// A bad user ID reads as not found, not an empty report
	if req.UserID != nil && *req.UserID != "" {
		if _, err := s.userRepo.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return report.WorkerHoursReport{}, err
			}
			return report.WorkerHoursReport{}, fmt.Errorf("failed to get worker: %w", err)
		}
	}

	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return report.WorkerHoursReport{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return report.WorkerHoursReport{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	flatRows, err := s.reportRepo.GetWorkerHoursRows(ctx, req.UserID, from, to)
	if err != nil {
		return report.WorkerHoursReport{}, fmt.Errorf("failed to get worker hours data: %w", err)
	}

	// Fold the flat (worker, job, date) rows into per-worker summaries. Rows
	// arrive ordered by worker name then date, so the sub-lists come out
	// already sorted.
	summaryIndex := make(map[string]int)
	workers := make([]report.WorkerHoursSummary, 0)
	for _, row := range flatRows {
		idx, ok := summaryIndex[row.UserID]
		if !ok {
			workers = append(workers, report.WorkerHoursSummary{
				UserID:   row.UserID,
				UserName: row.UserName,
				ByJob:    make([]report.JobHoursRow, 0),
				ByDate:   make([]report.DateHoursRow, 0),
			})
			idx = len(workers) - 1
			summaryIndex[row.UserID] = idx
		}

		summary := &workers[idx]
		summary.TotalHours += row.TotalHours

		foundJob := false
		for j := range summary.ByJob {
			if summary.ByJob[j].JobID == row.JobID {
				summary.ByJob[j].TotalHours += row.TotalHours
				foundJob = true
				break
			}
		}
		if !foundJob {
			summary.ByJob = append(summary.ByJob, report.JobHoursRow{
				JobID:      row.JobID,
				JobCode:    row.JobCode,
				TotalHours: row.TotalHours,
			})
		}

		foundDate := false
		for d := range summary.ByDate {
			if summary.ByDate[d].Date == row.Date {
				summary.ByDate[d].TotalHours += row.TotalHours
				foundDate = true
				break
			}
		}
		if !foundDate {
			summary.ByDate = append(summary.ByDate, report.DateHoursRow{
				Date:       row.Date,
				TotalHours: row.TotalHours,
			})
		}
	}

	for i := range workers {
		workers[i].TotalHours = math.Round(workers[i].TotalHours*100) / 100
		for j := range workers[i].ByJob {
			workers[i].ByJob[j].TotalHours = math.Round(workers[i].ByJob[j].TotalHours*100) / 100
		}
		for d := range workers[i].ByDate {
			workers[i].ByDate[d].TotalHours = math.Round(workers[i].ByDate[d].TotalHours*100) / 100
		}
	}

	return report.WorkerHoursReport{
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		GeneratedAt: nowUTC.Format(time.RFC3339),
		Workers:     workers,
	}, nil
}

// GenerateGPSComplianceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateGPSComplianceReport(ctx context.Context, req report.GPSComplianceReportRequest) (report.GPSComplianceReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.GPSComplianceReport{}, err
	}

	nowUTC := time.Now().UTC()

	if req.JobID != nil && *req.JobID != "" {
		if _, err := s.jobRepo.GetByID(ctx, *req.JobID); err != nil {
			if errors.Is(err, job.ErrJobNotFound) {
				return report.GPSComplianceReport{}, err
			}
			return report.GPSComplianceReport{}, fmt.Errorf("failed to get job: %w", err)
		}
	}

	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return report.GPSComplianceReport{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return report.GPSComplianceReport{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	rows, err := s.reportRepo.GetGPSComplianceRows(ctx, req.JobID, from, to)
	if err != nil {
		return report.GPSComplianceReport{}, fmt.Errorf("failed to get compliance data: %w", err)
	}

	grouped := make(map[utils.ComplianceTier][]report.ComplianceRow)
	for _, row := range rows {
		tier := utils.ClassifyDistance(row.WorstDistanceMi)
		grouped[tier] = append(grouped[tier], row)
	}

	// Every tier appears in the report, empty or not, most severe first.
	groups := make([]report.ComplianceGroup, 0, len(report.TierOrder))
	for _, tier := range report.TierOrder {
		sessions := grouped[tier]
		if sessions == nil {
			sessions = make([]report.ComplianceRow, 0)
		}
		groups = append(groups, report.ComplianceGroup{
			Tier:     string(tier),
			Label:    report.TierLabels[tier],
			Count:    len(sessions),
			Sessions: sessions,
		})
	}

	return report.GPSComplianceReport{
		PeriodStart:   req.StartDate,
		PeriodEnd:     req.EndDate,
		GeneratedAt:   nowUTC.Format(time.RFC3339),
		TotalSessions: len(rows),
		Groups:        groups,
	}, nil
}

// PushPayrollFeed implements report.ReportService.
func (s *ReportServiceImpl) PushPayrollFeed(ctx context.Context, req report.PayrollReportRequest) (report.PayrollFeedResponse, error) {
	if !s.feedClient.Enabled() {
		return report.PayrollFeedResponse{}, report.ErrFeedDisabled
	}

	// Unreviewed hours never leave the building.
	req.ReviewedOnly = true

	payrollReport, err := s.GeneratePayrollReport(ctx, req)
	if err != nil {
		return report.PayrollFeedResponse{}, err
	}

	batch := payrollfeed.BuildBatch(payrollReport)
	receipt, err := s.feedClient.PushBatch(ctx, batch)
	if err != nil {
		return report.PayrollFeedResponse{}, fmt.Errorf("failed to push payroll batch: %w", err)
	}

	slog.Info("Pushed payroll batch",
		"batch_id", batch.BatchID,
		"rows", len(batch.Lines),
		"status", receipt.Status)

	return report.PayrollFeedResponse{
		BatchID:     batch.BatchID,
		PeriodStart: payrollReport.PeriodStart,
		PeriodEnd:   payrollReport.PeriodEnd,
		RowCount:    len(batch.Lines),
		TotalHours:  payrollReport.TotalHours,
		TotalCost:   payrollReport.TotalCost,
		PushedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}
