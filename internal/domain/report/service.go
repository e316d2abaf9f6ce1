package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GeneratePayrollReport prices effective time by each worker's burden
	// rate. With ReviewedOnly set, hours a foreman never reviewed are excluded.
	GeneratePayrollReport(ctx context.Context, req PayrollReportRequest) (PayrollReport, error)

	GenerateJobLaborReport(ctx context.Context, req JobLaborReportRequest) (JobLaborReport, error)

	GenerateWorkerHoursReport(ctx context.Context, req WorkerHoursReportRequest) (WorkerHoursReport, error)

	GenerateGPSComplianceReport(ctx context.Context, req GPSComplianceReportRequest) (GPSComplianceReport, error)

	// PushPayrollFeed exports a payroll batch to the configured external
	// provider. Only reviewed hours are ever pushed, regardless of what the
	// request asks for. Returns ErrFeedDisabled when no provider is configured.
	PushPayrollFeed(ctx context.Context, req PayrollReportRequest) (PayrollFeedResponse, error)
}
