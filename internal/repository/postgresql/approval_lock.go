package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type approvalLockRepositoryImpl struct {
	db *database.DB
}

// Create implements timesheet.ApprovalLockRepository.
//
// Two approvers racing on the same week both reach the insert; the unique
// (user_id, job_id, week_start) constraint lets exactly one through and the
// loser is mapped to ErrWeekAlreadyApproved.
func (r *approvalLockRepositoryImpl) Create(ctx context.Context, lock timesheet.WeeklyApprovalLock) (timesheet.WeeklyApprovalLock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_approval_locks (user_id, job_id, week_start, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		lock.UserID, lock.JobID, lock.WeekStart, lock.ApprovedBy, lock.ApprovedAt,
	).Scan(&lock.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timesheet.WeeklyApprovalLock{}, timesheet.ErrWeekAlreadyApproved
		}
		return timesheet.WeeklyApprovalLock{}, fmt.Errorf("failed to create approval lock: %w", err)
	}

	return lock, nil
}

// Get implements timesheet.ApprovalLockRepository.
func (r *approvalLockRepositoryImpl) Get(ctx context.Context, userID, jobID string, weekStart time.Time) (timesheet.WeeklyApprovalLock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wal.id, wal.user_id, wal.job_id, wal.week_start, wal.approved_by, wal.approved_at,
			   u.name AS approver_name
		FROM weekly_approval_locks wal
		JOIN users u ON u.id = wal.approved_by
		WHERE wal.user_id = $1
		  AND wal.job_id = $2
		  AND wal.week_start = $3
	`

	var lock timesheet.WeeklyApprovalLock
	err := q.QueryRow(ctx, query, userID, jobID, weekStart).Scan(
		&lock.ID, &lock.UserID, &lock.JobID, &lock.WeekStart, &lock.ApprovedBy, &lock.ApprovedAt,
		&lock.ApproverName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.WeeklyApprovalLock{}, timesheet.ErrLockNotFound
		}
		return timesheet.WeeklyApprovalLock{}, fmt.Errorf("failed to get approval lock: %w", err)
	}

	return lock, nil
}

// IsLocked implements timesheet.ApprovalLockRepository.
func (r *approvalLockRepositoryImpl) IsLocked(ctx context.Context, userID, jobID string, weekStart time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM weekly_approval_locks
			WHERE user_id = $1
			  AND job_id = $2
			  AND week_start = $3
		)
	`

	var locked bool
	if err := q.QueryRow(ctx, query, userID, jobID, weekStart).Scan(&locked); err != nil {
		return false, fmt.Errorf("failed to check approval lock: %w", err)
	}

	return locked, nil
}

// ListByWeek implements timesheet.ApprovalLockRepository.
func (r *approvalLockRepositoryImpl) ListByWeek(ctx context.Context, weekStart time.Time) ([]timesheet.WeeklyApprovalLock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wal.id, wal.user_id, wal.job_id, wal.week_start, wal.approved_by, wal.approved_at,
			   u.name AS approver_name
		FROM weekly_approval_locks wal
		JOIN users u ON u.id = wal.approved_by
		WHERE wal.week_start = $1
		ORDER BY wal.approved_at ASC
	`

	rows, err := q.Query(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval locks: %w", err)
	}
	defer rows.Close()

	var locks []timesheet.WeeklyApprovalLock
	for rows.Next() {
		var lock timesheet.WeeklyApprovalLock
		err := rows.Scan(
			&lock.ID, &lock.UserID, &lock.JobID, &lock.WeekStart, &lock.ApprovedBy, &lock.ApprovedAt,
			&lock.ApproverName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval lock: %w", err)
		}
		locks = append(locks, lock)
	}

	return locks, nil
}

func NewApprovalLockRepository(db *database.DB) timesheet.ApprovalLockRepository {
	return &approvalLockRepositoryImpl{db: db}
}
