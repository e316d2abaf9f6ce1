package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/review"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type reviewedTimeRepositoryImpl struct {
	db *database.DB
}

// Upsert implements review.ReviewedTimeRepository.
func (r *reviewedTimeRepositoryImpl) Upsert(ctx context.Context, rt review.ForemanReviewedTime) (review.ForemanReviewedTime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO foreman_reviewed_time (
			user_id, job_id, labor_activity_id, work_date,
			reviewed_hours, notes, time_entry_id, reviewed_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, job_id, labor_activity_id, work_date) DO UPDATE
		SET reviewed_hours = EXCLUDED.reviewed_hours,
			notes = EXCLUDED.notes,
			time_entry_id = EXCLUDED.time_entry_id,
			reviewed_by = EXCLUDED.reviewed_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rt.UserID, rt.JobID, rt.LaborActivityID, rt.WorkDate,
		rt.ReviewedHours, rt.Notes, rt.TimeEntryID, rt.ReviewedBy,
	).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return review.ForemanReviewedTime{}, fmt.Errorf("failed to upsert reviewed time: %w", err)
	}

	return rt, nil
}

// GetByID implements review.ReviewedTimeRepository.
func (r *reviewedTimeRepositoryImpl) GetByID(ctx context.Context, id string) (review.ForemanReviewedTime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT frt.id, frt.user_id, frt.job_id, frt.labor_activity_id, frt.work_date,
			   frt.reviewed_hours, frt.notes, frt.time_entry_id, frt.reviewed_by,
			   frt.created_at, frt.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name,
			   rv.name AS reviewer_name
		FROM foreman_reviewed_time frt
		JOIN users u ON u.id = frt.user_id
		JOIN jobs j ON j.id = frt.job_id
		JOIN labor_activities la ON la.id = frt.labor_activity_id
		JOIN users rv ON rv.id = frt.reviewed_by
		WHERE frt.id = $1
	`

	var rt review.ForemanReviewedTime
	err := q.QueryRow(ctx, query, id).Scan(
		&rt.ID, &rt.UserID, &rt.JobID, &rt.LaborActivityID, &rt.WorkDate,
		&rt.ReviewedHours, &rt.Notes, &rt.TimeEntryID, &rt.ReviewedBy,
		&rt.CreatedAt, &rt.UpdatedAt,
		&rt.UserName, &rt.JobCode, &rt.ActivityName,
		&rt.ReviewerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return review.ForemanReviewedTime{}, review.ErrReviewNotFound
		}
		return review.ForemanReviewedTime{}, fmt.Errorf("failed to get reviewed time by ID: %w", err)
	}

	return rt, nil
}

// Query implements review.ReviewedTimeRepository.
func (r *reviewedTimeRepositoryImpl) Query(ctx context.Context, filter review.RangeFilter) ([]review.ForemanReviewedTime, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE frt.work_date >= $1 AND frt.work_date <= $2"
	args := []interface{}{filter.From, filter.To}
	argIdx := 3

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND frt.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		baseWhere += fmt.Sprintf(" AND frt.job_id = $%d", argIdx)
		args = append(args, *filter.JobID)
		argIdx++
	}

	query := `
		SELECT frt.id, frt.user_id, frt.job_id, frt.labor_activity_id, frt.work_date,
			   frt.reviewed_hours, frt.notes, frt.time_entry_id, frt.reviewed_by,
			   frt.created_at, frt.updated_at,
			   u.name AS user_name, j.code AS job_code, la.name AS activity_name,
			   rv.name AS reviewer_name
		FROM foreman_reviewed_time frt
		JOIN users u ON u.id = frt.user_id
		JOIN jobs j ON j.id = frt.job_id
		JOIN labor_activities la ON la.id = frt.labor_activity_id
		JOIN users rv ON rv.id = frt.reviewed_by
		` + baseWhere + `
		ORDER BY u.name ASC, frt.work_date ASC, la.name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviewed time: %w", err)
	}
	defer rows.Close()

	var reviewed []review.ForemanReviewedTime
	for rows.Next() {
		var rt review.ForemanReviewedTime
		err := rows.Scan(
			&rt.ID, &rt.UserID, &rt.JobID, &rt.LaborActivityID, &rt.WorkDate,
			&rt.ReviewedHours, &rt.Notes, &rt.TimeEntryID, &rt.ReviewedBy,
			&rt.CreatedAt, &rt.UpdatedAt,
			&rt.UserName, &rt.JobCode, &rt.ActivityName,
			&rt.ReviewerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviewed time: %w", err)
		}
		reviewed = append(reviewed, rt)
	}

	return reviewed, nil
}

// Delete implements review.ReviewedTimeRepository.
func (r *reviewedTimeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM foreman_reviewed_time WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reviewed time: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}

	return nil
}

func NewReviewedTimeRepository(db *database.DB) review.ReviewedTimeRepository {
	return &reviewedTimeRepositoryImpl{db: db}
}
