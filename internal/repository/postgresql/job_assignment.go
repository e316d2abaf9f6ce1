package postgresql

import (
	"context"
	"fmt"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type jobAssignmentRepositoryImpl struct {
	db *database.DB
}

// AssignWorker implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) AssignWorker(ctx context.Context, jobID, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_workers (job_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (job_id, user_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, jobID, userID); err != nil {
		return fmt.Errorf("failed to assign worker to job: %w", err)
	}

	return nil
}

// RemoveWorker implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) RemoveWorker(ctx context.Context, jobID, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM job_workers WHERE job_id = $1 AND user_id = $2`

	commandTag, err := q.Exec(ctx, query, jobID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove worker from job: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return job.ErrWorkerNotAssigned
	}

	return nil
}

// IsWorkerAssigned implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) IsWorkerAssigned(ctx context.Context, jobID, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM job_workers WHERE job_id = $1 AND user_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, jobID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check worker assignment: %w", err)
	}

	return exists, nil
}

// ListCrew implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) ListCrew(ctx context.Context, jobID string) ([]job.CrewMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.role, jw.assigned_at
		FROM job_workers jw
		JOIN users u ON u.id = jw.user_id
		WHERE jw.job_id = $1
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job crew: %w", err)
	}
	defer rows.Close()

	var crew []job.CrewMember
	for rows.Next() {
		var m job.CrewMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crew member: %w", err)
		}
		crew = append(crew, m)
	}

	return crew, nil
}

// ListJobsForWorker implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) ListJobsForWorker(ctx context.Context, userID string) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT j.id, j.code, j.description, j.status,
			   j.latitude, j.longitude, j.address, j.foreman_id,
			   j.created_at, j.updated_at,
			   COALESCE(u.name, '') AS foreman_name
		FROM job_workers jw
		JOIN jobs j ON j.id = jw.job_id
		LEFT JOIN users u ON u.id = j.foreman_id
		WHERE jw.user_id = $1
		ORDER BY j.code ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for worker: %w", err)
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

// AssignTrade implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) AssignTrade(ctx context.Context, jobID, tradeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_trades (job_id, trade_id)
		VALUES ($1, $2)
		ON CONFLICT (job_id, trade_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, jobID, tradeID); err != nil {
		return fmt.Errorf("failed to assign trade to job: %w", err)
	}

	return nil
}

// RemoveTrade implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) RemoveTrade(ctx context.Context, jobID, tradeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM job_trades WHERE job_id = $1 AND trade_id = $2`

	commandTag, err := q.Exec(ctx, query, jobID, tradeID)
	if err != nil {
		return fmt.Errorf("failed to remove trade from job: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return job.ErrTradeNotAssigned
	}

	return nil
}

// ListTradeIDs implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) ListTradeIDs(ctx context.Context, jobID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT trade_id FROM job_trades WHERE job_id = $1`

	rows, err := q.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job trades: %w", err)
	}
	defer rows.Close()

	var tradeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trade ID: %w", err)
		}
		tradeIDs = append(tradeIDs, id)
	}

	return tradeIDs, nil
}

// IsActivityInScope implements job.JobAssignmentRepository.
func (r *jobAssignmentRepositoryImpl) IsActivityInScope(ctx context.Context, jobID, activityID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM labor_activities la
			JOIN job_trades jt ON jt.trade_id = la.trade_id
			WHERE la.id = $1
			  AND jt.job_id = $2
			  AND la.is_active = TRUE
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, activityID, jobID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check activity scope: %w", err)
	}

	return exists, nil
}

func NewJobAssignmentRepository(db *database.DB) job.JobAssignmentRepository {
	return &jobAssignmentRepositoryImpl{db: db}
}
