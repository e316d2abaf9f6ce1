package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/review"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

type ReviewService interface {
	// SaveDraft upserts a job's corrected rows. Drafts stay mutable until the
	// containing week is finalized; rows in an already-approved week are
	// rejected with ErrPeriodLocked.
	SaveDraft(ctx context.Context, req review.SaveDraftRequest) ([]review.ReviewedTimeResponse, error)

	// GetEffectiveTime resolves reviewed rows against worker submissions for a
	// date range. ReviewedOnly mode drops unreviewed submissions, which is how
	// payroll extraction reads.
	GetEffectiveTime(ctx context.Context, filter review.EffectiveTimeFilter) ([]review.EffectiveRecordResponse, error)

	// Finalize approves the worker's week. It delegates to the timesheet
	// service so entry stamping and the lock install follow one code path.
	Finalize(ctx context.Context, req review.FinalizeRequest) (review.FinalizeResponse, error)

	// DeleteDraft removes a draft row before finalization.
	DeleteDraft(ctx context.Context, id string) error
}

type reviewServiceImpl struct {
	db               *database.DB
	reviewedRepo     review.ReviewedTimeRepository
	entryRepo        timesheet.TimeEntryRepository
	lockRepo         timesheet.ApprovalLockRepository
	jobRepo          job.JobRepository
	timesheetService timesheet.TimesheetService
}

func NewReviewService(
	db *database.DB,
	reviewedRepo review.ReviewedTimeRepository,
	entryRepo timesheet.TimeEntryRepository,
	lockRepo timesheet.ApprovalLockRepository,
	jobRepo job.JobRepository,
	timesheetService timesheet.TimesheetService,
) ReviewService {
	return &reviewServiceImpl{
		db:               db,
		reviewedRepo:     reviewedRepo,
		entryRepo:        entryRepo,
		lockRepo:         lockRepo,
		jobRepo:          jobRepo,
		timesheetService: timesheetService,
	}
}

// SaveDraft implements ReviewService.
func (s *reviewServiceImpl) SaveDraft(ctx context.Context, req review.SaveDraftRequest) ([]review.ReviewedTimeResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	reviewerID, ok := claims["user_id"].(string)
	if !ok || reviewerID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return nil, err
	}

	// Each line's (worker, week) must still be open. Check every distinct
	// combination once before writing anything.
	type lockKey struct {
		userID string
		week   string
	}
	checked := make(map[lockKey]bool)
	for _, line := range req.Lines {
		workDate, err := time.Parse("2006-01-02", line.WorkDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse work date: %w", err)
		}
		weekStart := utils.WeekStart(workDate)

		k := lockKey{line.UserID, weekStart.Format("2006-01-02")}
		if checked[k] {
			continue
		}
		locked, err := s.lockRepo.IsLocked(ctx, line.UserID, req.JobID, weekStart)
		if err != nil {
			return nil, fmt.Errorf("failed to check weekly approval lock: %w", err)
		}
		if locked {
			return nil, timesheet.ErrPeriodLocked
		}
		checked[k] = true
	}

	responses := make([]review.ReviewedTimeResponse, 0, len(req.Lines))
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, line := range req.Lines {
			workDate, err := time.Parse("2006-01-02", line.WorkDate)
			if err != nil {
				return fmt.Errorf("failed to parse work date: %w", err)
			}

			// A back-link must point at a real ledger row
			if line.TimeEntryID != nil {
				if _, err := s.entryRepo.GetByID(txCtx, *line.TimeEntryID); err != nil {
					return err
				}
			}

			saved, err := s.reviewedRepo.Upsert(txCtx, review.ForemanReviewedTime{
				UserID:          line.UserID,
				JobID:           req.JobID,
				LaborActivityID: line.LaborActivityID,
				WorkDate:        workDate,
				ReviewedHours:   timesheet.ClampHours(line.ReviewedHours),
				Notes:           line.Notes,
				TimeEntryID:     line.TimeEntryID,
				ReviewedBy:      reviewerID,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert reviewed time: %w", err)
			}
			responses = append(responses, review.ToReviewedTimeResponse(saved))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// GetEffectiveTime implements ReviewService.
func (s *reviewServiceImpl) GetEffectiveTime(ctx context.Context, filter review.EffectiveTimeFilter) ([]review.EffectiveRecordResponse, error) {
	// Validate request
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, err := time.Parse("2006-01-02", filter.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	to, err := time.Parse("2006-01-02", filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}

	reviewed, err := s.reviewedRepo.Query(ctx, review.RangeFilter{
		UserID: filter.UserID,
		JobID:  filter.JobID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, err
	}

	var records []review.EffectiveRecord
	if filter.ReviewedOnly {
		records = review.ResolveReviewedOnly(reviewed)
	} else {
		entries, err := s.entryRepo.QueryAll(ctx, filter.UserID, filter.JobID, from, to)
		if err != nil {
			return nil, err
		}
		records = review.Resolve(reviewed, toSubmittedEntries(entries))
	}

	responses := make([]review.EffectiveRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, review.ToEffectiveRecordResponse(rec))
	}

	return responses, nil
}

// Finalize implements ReviewService.
func (s *reviewServiceImpl) Finalize(ctx context.Context, req review.FinalizeRequest) (review.FinalizeResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return review.FinalizeResponse{}, err
	}

	approved, err := s.timesheetService.ApproveWeek(ctx, timesheet.ApproveWeekRequest{
		UserID:    req.UserID,
		JobID:     req.JobID,
		WeekStart: req.WeekStart,
	})
	if err != nil {
		return review.FinalizeResponse{}, err
	}

	return review.FinalizeResponse{
		UserID:          approved.UserID,
		JobID:           approved.JobID,
		WeekStart:       approved.WeekStart,
		ApprovedBy:      approved.ApprovedBy,
		ApprovedAt:      approved.ApprovedAt,
		EntriesApproved: approved.EntriesApproved,
		Warning:         approved.Warning,
	}, nil
}

// DeleteDraft implements ReviewService.
func (s *reviewServiceImpl) DeleteDraft(ctx context.Context, id string) error {
	row, err := s.reviewedRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	weekStart := utils.WeekStart(row.WorkDate)
	locked, err := s.lockRepo.IsLocked(ctx, row.UserID, row.JobID, weekStart)
	if err != nil {
		return fmt.Errorf("failed to check weekly approval lock: %w", err)
	}
	if locked {
		return timesheet.ErrPeriodLocked
	}

	if err := s.reviewedRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, review.ErrReviewNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete reviewed time: %w", err)
	}

	return nil
}

func toSubmittedEntries(entries []timesheet.TimeEntry) []review.SubmittedEntry {
	out := make([]review.SubmittedEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, review.SubmittedEntry{
			ID:              e.ID,
			UserID:          e.UserID,
			JobID:           e.JobID,
			LaborActivityID: e.LaborActivityID,
			Date:            e.Date,
			Hours:           e.Hours,
			Notes:           e.Notes,
			Approved:        e.Approved,
			UserName:        e.UserName,
			JobCode:         e.JobCode,
			ActivityName:    e.ActivityName,
		})
	}
	return out
}
