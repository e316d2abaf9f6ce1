package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/trade"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

type JobServiceImpl struct {
	db *database.DB
	job.JobRepository
	assignmentRepo job.JobAssignmentRepository
	userRepo       user.UserRepository
	tradeRepo      trade.TradeRepository
}

// CreateJob implements job.JobService.
func (s *JobServiceImpl) CreateJob(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	status := job.StatusActive
	if req.Status != "" {
		status = job.JobStatus(req.Status)
	}

	var created job.Job
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = s.JobRepository.Create(txCtx, job.Job{
			Code:        req.Code,
			Description: req.Description,
			Status:      status,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Address:     req.Address,
			ForemanID:   req.ForemanID,
		})
		if err != nil {
			// Check for duplicate code (unique constraint violation)
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505": // unique_violation
					return job.ErrJobCodeExists
				}
			}
			return fmt.Errorf("failed to create job: %w", err)
		}

		for _, tradeID := range req.TradeIDs {
			if _, err := s.tradeRepo.GetByID(txCtx, tradeID); err != nil {
				return err
			}
			if err := s.assignmentRepo.AssignTrade(txCtx, created.ID, tradeID); err != nil {
				return fmt.Errorf("failed to assign trade to job: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return job.JobResponse{}, err
	}

	return job.ToJobResponse(created), nil
}

// UpdateJob implements job.JobService.
func (s *JobServiceImpl) UpdateJob(ctx context.Context, req job.UpdateJobRequest) (job.JobResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	if _, err := s.JobRepository.GetByID(ctx, req.ID); err != nil {
		return job.JobResponse{}, err
	}

	hasRecords, err := s.JobRepository.HasTimeRecords(ctx, req.ID)
	if err != nil {
		return job.JobResponse{}, fmt.Errorf("failed to check job time records: %w", err)
	}
	if hasRecords {
		// Once hours are booked against a job, its identity and location are
		// frozen; only status and foreman may still change
		if req.Description != nil || req.Latitude != nil || req.Longitude != nil || req.Address != nil {
			return job.JobResponse{}, job.ErrJobHasTimeRecords
		}
	}

	if err := s.JobRepository.Update(ctx, req); err != nil {
		return job.JobResponse{}, err
	}

	updated, err := s.JobRepository.GetByID(ctx, req.ID)
	if err != nil {
		return job.JobResponse{}, err
	}

	return job.ToJobResponse(updated), nil
}

// GetJob implements job.JobService.
func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (job.JobResponse, error) {
	entity, err := s.JobRepository.GetByID(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}

	return job.ToJobResponse(entity), nil
}

// ListJobs implements job.JobService.
func (s *JobServiceImpl) ListJobs(ctx context.Context, filter job.JobFilter) ([]job.JobResponse, error) {
	entities, err := s.JobRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]job.JobResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, job.ToJobResponse(entity))
	}

	return responses, nil
}

// ListMyJobs implements job.JobService.
func (s *JobServiceImpl) ListMyJobs(ctx context.Context) ([]job.JobResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	entities, err := s.assignmentRepo.ListJobsForWorker(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]job.JobResponse, 0, len(entities))
	for _, entity := range entities {
		if !entity.IsClockable() {
			continue
		}
		responses = append(responses, job.ToJobResponse(entity))
	}

	return responses, nil
}

// AssignWorkers implements job.JobService.
func (s *JobServiceImpl) AssignWorkers(ctx context.Context, jobID string, req job.AssignWorkersRequest) error {
	// Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.JobRepository.GetByID(ctx, jobID); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, workerID := range req.WorkerIDs {
			if _, err := s.userRepo.GetByID(txCtx, workerID); err != nil {
				return err
			}
			if err := s.assignmentRepo.AssignWorker(txCtx, jobID, workerID); err != nil {
				return fmt.Errorf("failed to assign worker to job: %w", err)
			}
		}

		return nil
	})
}

// RemoveWorker implements job.JobService.
func (s *JobServiceImpl) RemoveWorker(ctx context.Context, jobID, userID string) error {
	if _, err := s.JobRepository.GetByID(ctx, jobID); err != nil {
		return err
	}

	if err := s.assignmentRepo.RemoveWorker(ctx, jobID, userID); err != nil {
		return err
	}

	return nil
}

// ListCrew implements job.JobService.
func (s *JobServiceImpl) ListCrew(ctx context.Context, jobID string) ([]job.CrewMemberResponse, error) {
	if _, err := s.JobRepository.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	members, err := s.assignmentRepo.ListCrew(ctx, jobID)
	if err != nil {
		return nil, err
	}

	responses := make([]job.CrewMemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, job.CrewMemberResponse{
			UserID:     member.UserID,
			Name:       member.Name,
			Email:      member.Email,
			Role:       member.Role,
			AssignedAt: member.AssignedAt,
		})
	}

	return responses, nil
}

// AssignTrades implements job.JobService.
func (s *JobServiceImpl) AssignTrades(ctx context.Context, jobID string, req job.AssignTradesRequest) error {
	// Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.JobRepository.GetByID(ctx, jobID); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, tradeID := range req.TradeIDs {
			if _, err := s.tradeRepo.GetByID(txCtx, tradeID); err != nil {
				return err
			}
			if err := s.assignmentRepo.AssignTrade(txCtx, jobID, tradeID); err != nil {
				return fmt.Errorf("failed to assign trade to job: %w", err)
			}
		}

		return nil
	})
}

func NewJobService(
	db *database.DB,
	jobRepository job.JobRepository,
	assignmentRepo job.JobAssignmentRepository,
	userRepo user.UserRepository,
	tradeRepo trade.TradeRepository,
) job.JobService {
	return &JobServiceImpl{
		db:             db,
		JobRepository:  jobRepository,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		tradeRepo:      tradeRepo,
	}
}
