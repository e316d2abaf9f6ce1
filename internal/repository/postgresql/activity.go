package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/activity"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

// Create implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Create(ctx context.Context, a activity.LaborActivity) (activity.LaborActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO labor_activities (name, trade_id, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, a.Name, a.TradeID, a.IsActive).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return activity.LaborActivity{}, fmt.Errorf("failed to create labor activity: %w", err)
	}

	return a, nil
}

// GetByID implements activity.ActivityRepository.
func (r *activityRepositoryImpl) GetByID(ctx context.Context, id string) (activity.LaborActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.name, la.trade_id, la.is_active, la.created_at, la.updated_at,
			   t.name AS trade_name
		FROM labor_activities la
		LEFT JOIN trades t ON t.id = la.trade_id
		WHERE la.id = $1
	`

	var a activity.LaborActivity
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.TradeID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		&a.TradeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return activity.LaborActivity{}, activity.ErrActivityNotFound
		}
		return activity.LaborActivity{}, fmt.Errorf("failed to get labor activity by ID: %w", err)
	}

	return a, nil
}

// List implements activity.ActivityRepository.
func (r *activityRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]activity.LaborActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.name, la.trade_id, la.is_active, la.created_at, la.updated_at,
			   t.name AS trade_name
		FROM labor_activities la
		LEFT JOIN trades t ON t.id = la.trade_id
	`
	if activeOnly {
		query += " WHERE la.is_active = TRUE"
	}
	query += " ORDER BY t.name ASC, la.name ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list labor activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListByTrade implements activity.ActivityRepository.
func (r *activityRepositoryImpl) ListByTrade(ctx context.Context, tradeID string, activeOnly bool) ([]activity.LaborActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.name, la.trade_id, la.is_active, la.created_at, la.updated_at,
			   t.name AS trade_name
		FROM labor_activities la
		LEFT JOIN trades t ON t.id = la.trade_id
		WHERE la.trade_id = $1
	`
	if activeOnly {
		query += " AND la.is_active = TRUE"
	}
	query += " ORDER BY la.name ASC"

	rows, err := q.Query(ctx, query, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labor activities by trade: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListForJob implements activity.ActivityRepository.
func (r *activityRepositoryImpl) ListForJob(ctx context.Context, jobID string) ([]activity.LaborActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.name, la.trade_id, la.is_active, la.created_at, la.updated_at,
			   t.name AS trade_name
		FROM labor_activities la
		JOIN trades t ON t.id = la.trade_id
		JOIN job_trades jt ON jt.trade_id = la.trade_id
		WHERE jt.job_id = $1
		  AND la.is_active = TRUE
		ORDER BY t.name ASC, la.name ASC
	`

	rows, err := q.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labor activities for job: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// Update implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Update(ctx context.Context, req activity.UpdateActivityRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	query := "UPDATE labor_activities SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return activity.ErrActivityNotFound
		}
		return fmt.Errorf("failed to update labor activity: %w", err)
	}

	return nil
}

func scanActivities(rows pgx.Rows) ([]activity.LaborActivity, error) {
	var activities []activity.LaborActivity
	for rows.Next() {
		var a activity.LaborActivity
		err := rows.Scan(
			&a.ID, &a.Name, &a.TradeID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
			&a.TradeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan labor activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}
