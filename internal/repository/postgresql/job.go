package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type jobRepositoryImpl struct {
	db *database.DB
}

// Create implements job.JobRepository.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO jobs (code, description, status, latitude, longitude, address, foreman_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		j.Code, j.Description, j.Status, j.Latitude, j.Longitude, j.Address, j.ForemanID,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}

	return j, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.code, j.description, j.status,
			   j.latitude, j.longitude, j.address, j.foreman_id,
			   j.created_at, j.updated_at,
			   COALESCE(u.name, '') AS foreman_name
		FROM jobs j
		LEFT JOIN users u ON u.id = j.foreman_id
		WHERE j.id = $1
	`

	var j job.Job
	err := q.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.Code, &j.Description, &j.Status,
		&j.Latitude, &j.Longitude, &j.Address, &j.ForemanID,
		&j.CreatedAt, &j.UpdatedAt,
		&j.ForemanName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job by ID: %w", err)
	}

	return j, nil
}

// GetByCode implements job.JobRepository.
func (r *jobRepositoryImpl) GetByCode(ctx context.Context, code string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.code, j.description, j.status,
			   j.latitude, j.longitude, j.address, j.foreman_id,
			   j.created_at, j.updated_at,
			   COALESCE(u.name, '') AS foreman_name
		FROM jobs j
		LEFT JOIN users u ON u.id = j.foreman_id
		WHERE j.code = $1
	`

	var j job.Job
	err := q.QueryRow(ctx, query, code).Scan(
		&j.ID, &j.Code, &j.Description, &j.Status,
		&j.Latitude, &j.Longitude, &j.Address, &j.ForemanID,
		&j.CreatedAt, &j.UpdatedAt,
		&j.ForemanName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job by code: %w", err)
	}

	return j, nil
}

// List implements job.JobRepository.
func (r *jobRepositoryImpl) List(ctx context.Context, filter job.JobFilter) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND j.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.ForemanID != "" {
		baseWhere += fmt.Sprintf(" AND j.foreman_id = $%d", argIdx)
		args = append(args, filter.ForemanID)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (j.code ILIKE $%d OR j.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query := `
		SELECT j.id, j.code, j.description, j.status,
			   j.latitude, j.longitude, j.address, j.foreman_id,
			   j.created_at, j.updated_at,
			   COALESCE(u.name, '') AS foreman_name
		FROM jobs j
		LEFT JOIN users u ON u.id = j.foreman_id
		` + baseWhere + `
		ORDER BY j.code ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		err := rows.Scan(
			&j.ID, &j.Code, &j.Description, &j.Status,
			&j.Latitude, &j.Longitude, &j.Address, &j.ForemanID,
			&j.CreatedAt, &j.UpdatedAt,
			&j.ForemanName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// Update implements job.JobRepository.
func (r *jobRepositoryImpl) Update(ctx context.Context, req job.UpdateJobRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *req.Status)
		argIdx++
	}
	if req.Latitude != nil {
		updates = append(updates, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, *req.Latitude)
		argIdx++
	}
	if req.Longitude != nil {
		updates = append(updates, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, *req.Longitude)
		argIdx++
	}
	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argIdx))
		args = append(args, *req.Address)
		argIdx++
	}
	if req.ForemanID != nil {
		updates = append(updates, fmt.Sprintf("foreman_id = $%d", argIdx))
		args = append(args, *req.ForemanID)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	query := "UPDATE jobs SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d", argIdx)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// HasTimeRecords implements job.JobRepository.
func (r *jobRepositoryImpl) HasTimeRecords(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (SELECT 1 FROM clock_sessions WHERE job_id = $1)
			OR EXISTS (SELECT 1 FROM time_entries WHERE job_id = $1)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check job time records: %w", err)
	}

	return exists, nil
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}
