package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/report"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

// GetJobLaborSummary implements report.ReportRepository.
func (r *reportRepositoryImpl) GetJobLaborSummary(ctx context.Context, jobID string, from, to time.Time) ([]report.JobLaborRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id,
			   la.name AS activity_name,
			   t.name AS trade_name,
			   COALESCE(SUM(te.hours), 0) AS total_hours,
			   COUNT(DISTINCT te.user_id) AS worker_count
		FROM time_entries te
		JOIN labor_activities la ON la.id = te.labor_activity_id
		JOIN trades t ON t.id = la.trade_id
		WHERE te.job_id = $1
		  AND te.date >= $2
		  AND te.date <= $3
		GROUP BY la.id, la.name, t.name
		ORDER BY total_hours DESC, la.name ASC
	`

	rows, err := q.Query(ctx, query, jobID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get job labor summary: %w", err)
	}
	defer rows.Close()

	var summary []report.JobLaborRow
	for rows.Next() {
		var row report.JobLaborRow
		err := rows.Scan(
			&row.LaborActivityID, &row.ActivityName, &row.TradeName,
			&row.TotalHours, &row.WorkerCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job labor row: %w", err)
		}
		summary = append(summary, row)
	}

	return summary, nil
}

// GetWorkerHoursRows implements report.ReportRepository.
func (r *reportRepositoryImpl) GetWorkerHoursRows(ctx context.Context, userID *string, from, to time.Time) ([]report.WorkerHoursRow, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE te.date >= $1 AND te.date <= $2"
	args := []interface{}{from, to}
	argIdx := 3

	if userID != nil && *userID != "" {
		baseWhere += fmt.Sprintf(" AND te.user_id = $%d", argIdx)
		args = append(args, *userID)
		argIdx++
	}

	query := `
		SELECT te.user_id,
			   u.name AS user_name,
			   te.job_id,
			   j.code AS job_code,
			   te.date::text,
			   COALESCE(SUM(te.hours), 0) AS total_hours
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		JOIN jobs j ON j.id = te.job_id
		` + baseWhere + `
		GROUP BY te.user_id, u.name, te.job_id, j.code, te.date
		ORDER BY u.name ASC, te.date ASC, j.code ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker hours: %w", err)
	}
	defer rows.Close()

	var result []report.WorkerHoursRow
	for rows.Next() {
		var row report.WorkerHoursRow
		err := rows.Scan(
			&row.UserID, &row.UserName, &row.JobID, &row.JobCode,
			&row.Date, &row.TotalHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker hours row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

// GetGPSComplianceRows implements report.ReportRepository.
func (r *reportRepositoryImpl) GetGPSComplianceRows(ctx context.Context, jobID *string, from, to time.Time) ([]report.ComplianceRow, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `
		WHERE cs.clock_out IS NOT NULL
		  AND (cs.clock_in_distance_mi IS NOT NULL OR cs.clock_out_distance_mi IS NOT NULL)
		  AND cs.clock_in >= $1::date
		  AND cs.clock_in < $2::date + INTERVAL '1 day'`
	args := []interface{}{from, to}
	argIdx := 3

	if jobID != nil && *jobID != "" {
		baseWhere += fmt.Sprintf(" AND cs.job_id = $%d", argIdx)
		args = append(args, *jobID)
		argIdx++
	}

	query := `
		SELECT cs.id,
			   cs.user_id,
			   u.name AS user_name,
			   cs.job_id,
			   j.code AS job_code,
			   cs.clock_in,
			   cs.clock_in_distance_mi,
			   cs.clock_out_distance_mi,
			   GREATEST(COALESCE(cs.clock_in_distance_mi, 0), COALESCE(cs.clock_out_distance_mi, 0)) AS worst_distance_mi
		FROM clock_sessions cs
		JOIN users u ON u.id = cs.user_id
		JOIN jobs j ON j.id = cs.job_id
		` + baseWhere + `
		ORDER BY worst_distance_mi DESC, cs.clock_in ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get GPS compliance rows: %w", err)
	}
	defer rows.Close()

	var result []report.ComplianceRow
	for rows.Next() {
		var row report.ComplianceRow
		var clockIn time.Time
		err := rows.Scan(
			&row.SessionID, &row.UserID, &row.UserName, &row.JobID, &row.JobCode,
			&clockIn, &row.ClockInDistanceMi, &row.ClockOutDistanceMi, &row.WorstDistanceMi,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compliance row: %w", err)
		}
		row.ClockIn = clockIn.Format("2006-01-02 15:04:05")
		result = append(result, row)
	}

	return result, nil
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}
