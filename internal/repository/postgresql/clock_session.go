package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/clocksession"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type clockSessionRepositoryImpl struct {
	db *database.DB
}

// Create implements clocksession.ClockSessionRepository.
//
// The partial unique index on open sessions makes the single-open-session rule
// safe under concurrent requests; the losing insert comes back as a unique
// violation and is mapped to ErrSessionAlreadyActive here.
func (r *clockSessionRepositoryImpl) Create(ctx context.Context, s clocksession.ClockSession) (clocksession.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_sessions (
			user_id, job_id, labor_activity_id, clock_in, notes, is_active,
			clock_in_latitude, clock_in_longitude, clock_in_accuracy, clock_in_distance_mi
		)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID, s.JobID, s.LaborActivityID, s.ClockIn, s.Notes,
		s.ClockInLatitude, s.ClockInLongitude, s.ClockInAccuracy, s.ClockInDistanceMi,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return clocksession.ClockSession{}, clocksession.ErrSessionAlreadyActive
		}
		return clocksession.ClockSession{}, fmt.Errorf("failed to create clock session: %w", err)
	}

	s.IsActive = true
	return s, nil
}

// GetByID implements clocksession.ClockSessionRepository.
func (r *clockSessionRepositoryImpl) GetByID(ctx context.Context, id string) (clocksession.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT cs.id, cs.user_id, cs.job_id, cs.labor_activity_id,
			   cs.clock_in, cs.clock_out, cs.notes, cs.is_active,
			   cs.clock_in_latitude, cs.clock_in_longitude, cs.clock_in_accuracy, cs.clock_in_distance_mi,
			   cs.clock_out_latitude, cs.clock_out_longitude, cs.clock_out_accuracy, cs.clock_out_distance_mi,
			   cs.created_at, cs.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM clock_sessions cs
		JOIN users u ON u.id = cs.user_id
		JOIN jobs j ON j.id = cs.job_id
		JOIN labor_activities la ON la.id = cs.labor_activity_id
		WHERE cs.id = $1
	`

	var s clocksession.ClockSession
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.JobID, &s.LaborActivityID,
		&s.ClockIn, &s.ClockOut, &s.Notes, &s.IsActive,
		&s.ClockInLatitude, &s.ClockInLongitude, &s.ClockInAccuracy, &s.ClockInDistanceMi,
		&s.ClockOutLatitude, &s.ClockOutLongitude, &s.ClockOutAccuracy, &s.ClockOutDistanceMi,
		&s.CreatedAt, &s.UpdatedAt,
		&s.UserName, &s.JobCode, &s.ActivityName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return clocksession.ClockSession{}, clocksession.ErrSessionNotFound
		}
		return clocksession.ClockSession{}, fmt.Errorf("failed to get clock session by ID: %w", err)
	}

	return s, nil
}

// GetOpenByUser implements clocksession.ClockSessionRepository.
func (r *clockSessionRepositoryImpl) GetOpenByUser(ctx context.Context, userID string) (clocksession.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT cs.id, cs.user_id, cs.job_id, cs.labor_activity_id,
			   cs.clock_in, cs.clock_out, cs.notes, cs.is_active,
			   cs.clock_in_latitude, cs.clock_in_longitude, cs.clock_in_accuracy, cs.clock_in_distance_mi,
			   cs.clock_out_latitude, cs.clock_out_longitude, cs.clock_out_accuracy, cs.clock_out_distance_mi,
			   cs.created_at, cs.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM clock_sessions cs
		JOIN users u ON u.id = cs.user_id
		JOIN jobs j ON j.id = cs.job_id
		JOIN labor_activities la ON la.id = cs.labor_activity_id
		WHERE cs.user_id = $1
		  AND cs.is_active = TRUE
		  AND cs.clock_out IS NULL
	`

	var s clocksession.ClockSession
	err := q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.JobID, &s.LaborActivityID,
		&s.ClockIn, &s.ClockOut, &s.Notes, &s.IsActive,
		&s.ClockInLatitude, &s.ClockInLongitude, &s.ClockInAccuracy, &s.ClockInDistanceMi,
		&s.ClockOutLatitude, &s.ClockOutLongitude, &s.ClockOutAccuracy, &s.ClockOutDistanceMi,
		&s.CreatedAt, &s.UpdatedAt,
		&s.UserName, &s.JobCode, &s.ActivityName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return clocksession.ClockSession{}, clocksession.ErrNoActiveSession
		}
		return clocksession.ClockSession{}, fmt.Errorf("failed to get open clock session: %w", err)
	}

	return s, nil
}

// Close implements clocksession.ClockSessionRepository.
func (r *clockSessionRepositoryImpl) Close(ctx context.Context, s clocksession.ClockSession) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_sessions
		SET clock_out = $1,
			notes = $2,
			is_active = FALSE,
			clock_out_latitude = $3,
			clock_out_longitude = $4,
			clock_out_accuracy = $5,
			clock_out_distance_mi = $6,
			updated_at = $7
		WHERE id = $8
		  AND is_active = TRUE
	`

	commandTag, err := q.Exec(ctx, query,
		s.ClockOut, s.Notes,
		s.ClockOutLatitude, s.ClockOutLongitude, s.ClockOutAccuracy, s.ClockOutDistanceMi,
		time.Now(), s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to close clock session: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return clocksession.ErrSessionClosed
	}

	return nil
}

// List implements clocksession.ClockSessionRepository.
func (r *clockSessionRepositoryImpl) List(ctx context.Context, filter clocksession.SessionFilter) ([]clocksession.ClockSession, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND cs.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		baseWhere += fmt.Sprintf(" AND cs.job_id = $%d", argIdx)
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND cs.clock_in >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND cs.clock_in < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.ActiveOnly {
		baseWhere += " AND cs.is_active = TRUE AND cs.clock_out IS NULL"
	}

	// Count total
	countQuery := `
		SELECT COUNT(*)
		FROM clock_sessions cs
		` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clock sessions: %w", err)
	}

	// Sorting
	sortBy := "cs.clock_in"
	switch filter.SortBy {
	case "user_name":
		sortBy = "u.name"
	case "job_code":
		sortBy = "j.code"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT cs.id, cs.user_id, cs.job_id, cs.labor_activity_id,
			   cs.clock_in, cs.clock_out, cs.notes, cs.is_active,
			   cs.clock_in_latitude, cs.clock_in_longitude, cs.clock_in_accuracy, cs.clock_in_distance_mi,
			   cs.clock_out_latitude, cs.clock_out_longitude, cs.clock_out_accuracy, cs.clock_out_distance_mi,
			   cs.created_at, cs.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM clock_sessions cs
		JOIN users u ON u.id = cs.user_id
		JOIN jobs j ON j.id = cs.job_id
		JOIN labor_activities la ON la.id = cs.labor_activity_id
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, sortBy, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clock sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := scanClockSessions(rows)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// GetStaleActive implements clocksession.ClockSessionRepository.
func (r *clockSessionRepositoryImpl) GetStaleActive(ctx context.Context, cutoff time.Time) ([]clocksession.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT cs.id, cs.user_id, cs.job_id, cs.labor_activity_id,
			   cs.clock_in, cs.clock_out, cs.notes, cs.is_active,
			   cs.clock_in_latitude, cs.clock_in_longitude, cs.clock_in_accuracy, cs.clock_in_distance_mi,
			   cs.clock_out_latitude, cs.clock_out_longitude, cs.clock_out_accuracy, cs.clock_out_distance_mi,
			   cs.created_at, cs.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name
		FROM clock_sessions cs
		JOIN users u ON u.id = cs.user_id
		JOIN jobs j ON j.id = cs.job_id
		JOIN labor_activities la ON la.id = cs.labor_activity_id
		WHERE cs.is_active = TRUE
		  AND cs.clock_out IS NULL
		  AND cs.clock_in <= $1
		ORDER BY cs.clock_in ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale clock sessions: %w", err)
	}
	defer rows.Close()

	return scanClockSessions(rows)
}

func scanClockSessions(rows pgx.Rows) ([]clocksession.ClockSession, error) {
	var sessions []clocksession.ClockSession
	for rows.Next() {
		var s clocksession.ClockSession
		err := rows.Scan(
			&s.ID, &s.UserID, &s.JobID, &s.LaborActivityID,
			&s.ClockIn, &s.ClockOut, &s.Notes, &s.IsActive,
			&s.ClockInLatitude, &s.ClockInLongitude, &s.ClockInAccuracy, &s.ClockInDistanceMi,
			&s.ClockOutLatitude, &s.ClockOutLongitude, &s.ClockOutAccuracy, &s.ClockOutDistanceMi,
			&s.CreatedAt, &s.UpdatedAt,
			&s.UserName, &s.JobCode, &s.ActivityName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func NewClockSessionRepository(db *database.DB) clocksession.ClockSessionRepository {
	return &clockSessionRepositoryImpl{db: db}
}
