package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

// Upsert implements timesheet.TimeEntryRepository.
//
// The write is one conditional statement: on conflict the row is updated only
// while unapproved. When the guard blocks the update nothing comes back, which
// Scan reports as pgx.ErrNoRows and we map to ErrEntryApproved.
func (r *timeEntryRepositoryImpl) Upsert(ctx context.Context, e timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (user_id, job_id, labor_activity_id, date, hours, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, job_id, labor_activity_id, date) DO UPDATE
		SET hours = EXCLUDED.hours,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		WHERE time_entries.approved = FALSE
		RETURNING id, approved, approved_by, approved_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UserID, e.JobID, e.LaborActivityID, e.Date, e.Hours, e.Notes,
	).Scan(&e.ID, &e.Approved, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeEntry{}, timesheet.ErrEntryApproved
		}
		return timesheet.TimeEntry{}, fmt.Errorf("failed to upsert time entry: %w", err)
	}

	return e, nil
}

// GetByID implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT te.id, te.user_id, te.job_id, te.labor_activity_id,
			   te.date, te.hours, te.notes,
			   te.approved, te.approved_by, te.approved_at,
			   te.created_at, te.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		JOIN jobs j ON j.id = te.job_id
		JOIN labor_activities la ON la.id = te.labor_activity_id
		WHERE te.id = $1
	`

	var e timesheet.TimeEntry
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.JobID, &e.LaborActivityID,
		&e.Date, &e.Hours, &e.Notes,
		&e.Approved, &e.ApprovedBy, &e.ApprovedAt,
		&e.CreatedAt, &e.UpdatedAt,
		&e.UserName, &e.JobCode, &e.ActivityName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeEntry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return e, nil
}

// DeleteRange implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) DeleteRange(ctx context.Context, userID, jobID string, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM time_entries
		WHERE user_id = $1
		  AND job_id = $2
		  AND date >= $3
		  AND date <= $4
		  AND approved = FALSE
	`

	if _, err := q.Exec(ctx, query, userID, jobID, from, to); err != nil {
		return fmt.Errorf("failed to delete time entries: %w", err)
	}

	return nil
}

// QueryRange implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) QueryRange(ctx context.Context, userID, jobID string, from, to time.Time) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT te.id, te.user_id, te.job_id, te.labor_activity_id,
			   te.date, te.hours, te.notes,
			   te.approved, te.approved_by, te.approved_at,
			   te.created_at, te.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		JOIN jobs j ON j.id = te.job_id
		JOIN labor_activities la ON la.id = te.labor_activity_id
		WHERE te.user_id = $1
		  AND te.job_id = $2
		  AND te.date >= $3
		  AND te.date <= $4
		ORDER BY te.date ASC, la.name ASC
	`

	rows, err := q.Query(ctx, query, userID, jobID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

// QueryAll implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) QueryAll(ctx context.Context, userID, jobID *string, from, to time.Time) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT te.id, te.user_id, te.job_id, te.labor_activity_id,
			   te.date, te.hours, te.notes,
			   te.approved, te.approved_by, te.approved_at,
			   te.created_at, te.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		JOIN jobs j ON j.id = te.job_id
		JOIN labor_activities la ON la.id = te.labor_activity_id
		WHERE te.date >= $1
		  AND te.date <= $2
	`
	args := []interface{}{from, to}
	argIdx := 3

	if userID != nil && *userID != "" {
		query += fmt.Sprintf(" AND te.user_id = $%d", argIdx)
		args = append(args, *userID)
		argIdx++
	}
	if jobID != nil && *jobID != "" {
		query += fmt.Sprintf(" AND te.job_id = $%d", argIdx)
		args = append(args, *jobID)
		argIdx++
	}

	query += " ORDER BY u.name ASC, te.date ASC, la.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

// List implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) List(ctx context.Context, filter timesheet.EntryFilter) ([]timesheet.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND te.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		baseWhere += fmt.Sprintf(" AND te.job_id = $%d", argIdx)
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND te.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND te.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Approved != nil {
		baseWhere += fmt.Sprintf(" AND te.approved = $%d", argIdx)
		args = append(args, *filter.Approved)
		argIdx++
	}

	// Count total
	countQuery := `
		SELECT COUNT(*)
		FROM time_entries te
		` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	// Sorting
	sortBy := "te.date"
	switch filter.SortBy {
	case "user_name":
		sortBy = "u.name"
	case "job_code":
		sortBy = "j.code"
	case "hours":
		sortBy = "te.hours"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT te.id, te.user_id, te.job_id, te.labor_activity_id,
			   te.date, te.hours, te.notes,
			   te.approved, te.approved_by, te.approved_at,
			   te.created_at, te.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		JOIN jobs j ON j.id = te.job_id
		JOIN labor_activities la ON la.id = te.labor_activity_id
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, sortBy, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanTimeEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ApproveRange implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ApproveRange(ctx context.Context, userID, jobID string, from, to time.Time, approverID string, approvedAt time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET approved = TRUE,
			approved_by = $1,
			approved_at = $2,
			updated_at = NOW()
		WHERE user_id = $3
		  AND job_id = $4
		  AND date >= $5
		  AND date <= $6
		  AND approved = FALSE
	`

	commandTag, err := q.Exec(ctx, query, approverID, approvedAt, userID, jobID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to approve time entries: %w", err)
	}

	return int(commandTag.RowsAffected()), nil
}

// DistinctDates implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) DistinctDates(ctx context.Context, userID, jobID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT date
		FROM time_entries
		WHERE user_id = $1
		  AND job_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID, jobID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan entry date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}

func scanTimeEntries(rows pgx.Rows) ([]timesheet.TimeEntry, error) {
	var entries []timesheet.TimeEntry
	for rows.Next() {
		var e timesheet.TimeEntry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.JobID, &e.LaborActivityID,
			&e.Date, &e.Hours, &e.Notes,
			&e.Approved, &e.ApprovedBy, &e.ApprovedAt,
			&e.CreatedAt, &e.UpdatedAt,
			&e.UserName, &e.JobCode, &e.ActivityName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func NewTimeEntryRepository(db *database.DB) timesheet.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}
