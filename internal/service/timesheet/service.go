package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

type TimesheetServiceImpl struct {
	db        *database.DB
	entryRepo timesheet.TimeEntryRepository
	lockRepo  timesheet.ApprovalLockRepository
	userRepo  user.UserRepository
	jobRepo   job.JobRepository
}

// subjectUserID resolves whose timesheet a request targets: the explicit
// user_id when a foreman acts on behalf of crew, otherwise the caller's own.
func (s *TimesheetServiceImpl) subjectUserID(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		if _, err := s.userRepo.GetByID(ctx, requested); err != nil {
			return "", err
		}
		return requested, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// UpsertDay implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) UpsertDay(ctx context.Context, req timesheet.UpsertDayRequest) ([]timesheet.TimeEntryResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := s.subjectUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	weekStart := utils.WeekStart(date)

	locked, err := s.lockRepo.IsLocked(ctx, userID, req.JobID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to check weekly approval lock: %w", err)
	}
	if locked {
		return nil, timesheet.ErrPeriodLocked
	}

	responses := make([]timesheet.TimeEntryResponse, 0, len(req.Lines))
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, line := range req.Lines {
			entry, err := s.entryRepo.Upsert(txCtx, timesheet.TimeEntry{
				UserID:          userID,
				JobID:           req.JobID,
				LaborActivityID: line.LaborActivityID,
				Date:            date,
				Hours:           timesheet.ClampHours(line.Hours),
				Notes:           line.Notes,
			})
			if err != nil {
				if errors.Is(err, timesheet.ErrEntryApproved) {
					return err
				}
				return fmt.Errorf("failed to upsert time entry: %w", err)
			}
			responses = append(responses, timesheet.ToTimeEntryResponse(entry))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// SubmitWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) SubmitWeek(ctx context.Context, req timesheet.SubmitWeekRequest) (timesheet.WeekResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return timesheet.WeekResponse{}, err
	}

	userID, err := s.subjectUserID(ctx, req.UserID)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}

	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return timesheet.WeekResponse{}, err
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return timesheet.WeekResponse{}, fmt.Errorf("failed to parse week start: %w", err)
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	locked, err := s.lockRepo.IsLocked(ctx, userID, req.JobID, weekStart)
	if err != nil {
		return timesheet.WeekResponse{}, fmt.Errorf("failed to check weekly approval lock: %w", err)
	}
	if locked {
		return timesheet.WeekResponse{}, timesheet.ErrPeriodLocked
	}

	// Replace semantics: clear the unapproved week, then write the grid's
	// non-zero days. Resubmitting the same grid lands in the same state.
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.entryRepo.DeleteRange(txCtx, userID, req.JobID, weekStart, weekEnd); err != nil {
			return fmt.Errorf("failed to clear week entries: %w", err)
		}

		for _, day := range req.Days {
			if day.Hours == 0 {
				continue
			}
			date, err := time.Parse("2006-01-02", day.Date)
			if err != nil {
				return fmt.Errorf("failed to parse day date: %w", err)
			}
			_, err = s.entryRepo.Upsert(txCtx, timesheet.TimeEntry{
				UserID:          userID,
				JobID:           req.JobID,
				LaborActivityID: day.LaborActivityID,
				Date:            date,
				Hours:           timesheet.ClampHours(day.Hours),
				Notes:           day.Notes,
			})
			if err != nil {
				if errors.Is(err, timesheet.ErrEntryApproved) {
					return err
				}
				return fmt.Errorf("failed to upsert time entry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return timesheet.WeekResponse{}, err
	}

	return s.buildWeek(ctx, userID, req.JobID, weekStart)
}

// GetWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetWeek(ctx context.Context, userID, jobID, weekStart string) (timesheet.WeekResponse, error) {
	resolvedID, err := s.subjectUserID(ctx, userID)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}

	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return timesheet.WeekResponse{}, fmt.Errorf("failed to parse week start: %w", err)
	}

	// Any date inside the week resolves to its Monday
	return s.buildWeek(ctx, resolvedID, jobID, utils.WeekStart(start))
}

// ApproveWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ApproveWeek(ctx context.Context, req timesheet.ApproveWeekRequest) (timesheet.ApproveWeekResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return timesheet.ApproveWeekResponse{}, err
	}
	nowUTC := time.Now().UTC()

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return timesheet.ApproveWeekResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	approverID, ok := claims["user_id"].(string)
	if !ok || approverID == "" {
		return timesheet.ApproveWeekResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return timesheet.ApproveWeekResponse{}, err
	}
	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return timesheet.ApproveWeekResponse{}, err
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return timesheet.ApproveWeekResponse{}, fmt.Errorf("failed to parse week start: %w", err)
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	locked, err := s.lockRepo.IsLocked(ctx, req.UserID, req.JobID, weekStart)
	if err != nil {
		return timesheet.ApproveWeekResponse{}, fmt.Errorf("failed to check weekly approval lock: %w", err)
	}
	if locked {
		return timesheet.ApproveWeekResponse{}, timesheet.ErrWeekAlreadyApproved
	}

	var approvedCount int
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// The unique (user, job, week) constraint decides between racing
		// approvers; the loser's whole transaction rolls back
		if _, err := s.lockRepo.Create(txCtx, timesheet.WeeklyApprovalLock{
			UserID:     req.UserID,
			JobID:      req.JobID,
			WeekStart:  weekStart,
			ApprovedBy: approverID,
			ApprovedAt: nowUTC,
		}); err != nil {
			return err
		}

		count, err := s.entryRepo.ApproveRange(txCtx, req.UserID, req.JobID, weekStart, weekEnd, approverID, nowUTC)
		if err != nil {
			return fmt.Errorf("failed to approve time entries: %w", err)
		}
		approvedCount = count

		return nil
	})
	if err != nil {
		return timesheet.ApproveWeekResponse{}, err
	}

	resp := timesheet.ApproveWeekResponse{
		UserID:          req.UserID,
		JobID:           req.JobID,
		WeekStart:       req.WeekStart,
		ApprovedBy:      approverID,
		ApprovedAt:      nowUTC.Format("2006-01-02 15:04:05"),
		EntriesApproved: approvedCount,
	}

	// Missing-day coverage warns the approver but never blocks
	dates, err := s.entryRepo.DistinctDates(ctx, req.UserID, req.JobID, weekStart, weekEnd)
	if err != nil {
		return timesheet.ApproveWeekResponse{}, fmt.Errorf("failed to check week coverage: %w", err)
	}
	if len(dates) < 7 {
		covered := make(map[string]bool, len(dates))
		for _, d := range dates {
			covered[d.Format("2006-01-02")] = true
		}
		missing := make([]string, 0, 7-len(dates))
		for _, day := range utils.WeekDates(weekStart) {
			if !covered[day.Format("2006-01-02")] {
				missing = append(missing, day.Format("Mon 01/02"))
			}
		}
		resp.Warning = fmt.Sprintf("no entries for: %s", strings.Join(missing, ", "))
	}

	return resp, nil
}

// ListEntries implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListEntries(ctx context.Context, filter timesheet.EntryFilter) (timesheet.ListEntriesResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	responses := make([]timesheet.TimeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, timesheet.ToTimeEntryResponse(entry))
	}

	return timesheet.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Entries:    responses,
	}, nil
}

// buildWeek assembles the weekly view: the range's entries, their total, and
// the lock state.
func (s *TimesheetServiceImpl) buildWeek(ctx context.Context, userID, jobID string, weekStart time.Time) (timesheet.WeekResponse, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	entries, err := s.entryRepo.QueryRange(ctx, userID, jobID, weekStart, weekEnd)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}

	resp := timesheet.WeekResponse{
		UserID:    userID,
		JobID:     jobID,
		WeekStart: weekStart.Format("2006-01-02"),
		Entries:   make([]timesheet.TimeEntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.TotalHours += entry.Hours
		resp.Entries = append(resp.Entries, timesheet.ToTimeEntryResponse(entry))
	}
	resp.TotalHours = math.Round(resp.TotalHours*100) / 100

	lock, err := s.lockRepo.Get(ctx, userID, jobID, weekStart)
	if err != nil {
		if !errors.Is(err, timesheet.ErrLockNotFound) {
			return timesheet.WeekResponse{}, err
		}
	} else {
		resp.Locked = true
		resp.LockedBy = lock.ApproverName
		resp.LockedAt = lock.ApprovedAt.Format("2006-01-02 15:04:05")
	}

	return resp, nil
}

func NewTimesheetService(
	db *database.DB,
	entryRepo timesheet.TimeEntryRepository,
	lockRepo timesheet.ApprovalLockRepository,
	userRepo user.UserRepository,
	jobRepo job.JobRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:        db,
		entryRepo: entryRepo,
		lockRepo:  lockRepo,
		userRepo:  userRepo,
		jobRepo:   jobRepo,
	}
}
