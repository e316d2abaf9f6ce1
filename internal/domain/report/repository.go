package report

import (
	"context"
	"time"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// Job Labor Summary: ledger hours grouped by activity for one job
	GetJobLaborSummary(ctx context.Context, jobID string, from, to time.Time) ([]JobLaborRow, error)

	// Worker Hours: flat (worker, job, date) totals from the ledger
	GetWorkerHoursRows(ctx context.Context, userID *string, from, to time.Time) ([]WorkerHoursRow, error)

	// GPS Compliance: closed sessions carrying at least one recorded distance
	GetGPSComplianceRows(ctx context.Context, jobID *string, from, to time.Time) ([]ComplianceRow, error)
}
