package clocksession

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/clocksession"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/devicelog"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/activity"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

type ClockSessionServiceImpl struct {
	db *database.DB
	clocksession.ClockSessionRepository
	userRepo       user.UserRepository
	jobRepo        job.JobRepository
	assignmentRepo job.JobAssignmentRepository
	activityRepo   activity.ActivityRepository
	entryRepo      timesheet.TimeEntryRepository
	lockRepo       timesheet.ApprovalLockRepository
	deviceLogRepo  devicelog.DeviceLogRepository
}

// siteDistance returns the rounded distance from a GPS fix to the job site, or
// nil when either side lacks coordinates.
func siteDistance(lat, lon *float64, j job.Job) *float64 {
	if lat == nil || lon == nil || !j.HasCoordinates() {
		return nil
	}
	if !utils.ValidCoordinates(*lat, *lon) {
		return nil
	}
	distance := utils.RoundMiles(utils.DistanceMiles(*lat, *lon, *j.Latitude, *j.Longitude))
	return &distance
}

// ClockIn implements clocksession.ClockSessionService.
func (s *ClockSessionServiceImpl) ClockIn(ctx context.Context, req clocksession.ClockInRequest) (clocksession.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return clocksession.SessionResponse{}, err
	}
	nowUTC := time.Now().UTC()

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return clocksession.SessionResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return clocksession.SessionResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	worker, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return clocksession.SessionResponse{}, err
	}
	if !worker.IsActive {
		return clocksession.SessionResponse{}, user.ErrUserInactive
	}
	if !worker.UsesClockIn {
		return clocksession.SessionResponse{}, user.ErrNotClockInUser
	}

	jobData, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return clocksession.SessionResponse{}, err
	}
	if !jobData.IsClockable() {
		return clocksession.SessionResponse{}, job.ErrJobNotActive
	}

	activityData, err := s.activityRepo.GetByID(ctx, req.LaborActivityID)
	if err != nil {
		return clocksession.SessionResponse{}, err
	}
	if !activityData.IsActive {
		return clocksession.SessionResponse{}, activity.ErrActivityInactive
	}

	inScope, err := s.assignmentRepo.IsActivityInScope(ctx, req.JobID, req.LaborActivityID)
	if err != nil {
		return clocksession.SessionResponse{}, fmt.Errorf("failed to check activity scope: %w", err)
	}
	if !inScope {
		return clocksession.SessionResponse{}, job.ErrActivityNotInScope
	}

	data := clocksession.ClockSession{
		UserID:           userID,
		JobID:            req.JobID,
		LaborActivityID:  req.LaborActivityID,
		ClockIn:          nowUTC,
		Notes:            req.Notes,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		ClockInAccuracy:  req.Accuracy,
	}
	data.ClockInDistanceMi = siteDistance(req.Latitude, req.Longitude, jobData)

	var created clocksession.ClockSession
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = s.ClockSessionRepository.Create(txCtx, data)
		if err != nil {
			if errors.Is(err, clocksession.ErrSessionAlreadyActive) {
				return err
			}
			return fmt.Errorf("failed to create clock session: %w", err)
		}

		_, err = s.deviceLogRepo.Create(txCtx, devicelog.DeviceLog{
			UserID:    userID,
			SessionID: &created.ID,
			Action:    devicelog.ActionClockIn,
			DeviceID:  req.DeviceID,
			UserAgent: strPtrOrNil(req.UserAgent),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
		})
		if err != nil {
			return fmt.Errorf("failed to record device log: %w", err)
		}

		return nil
	})
	if err != nil {
		return clocksession.SessionResponse{}, err
	}

	created.UserName = worker.Name
	created.JobCode = jobData.Code
	created.ActivityName = activityData.Name

	return clocksession.ToSessionResponse(created, nowUTC), nil
}

// ClockOut implements clocksession.ClockSessionService.
func (s *ClockSessionServiceImpl) ClockOut(ctx context.Context, req clocksession.ClockOutRequest) (clocksession.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return clocksession.ClockOutResponse{}, err
	}
	nowUTC := time.Now().UTC()

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return clocksession.ClockOutResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return clocksession.ClockOutResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	sessionData, err := s.ClockSessionRepository.GetOpenByUser(ctx, userID)
	if err != nil {
		return clocksession.ClockOutResponse{}, err
	}

	jobData, err := s.jobRepo.GetByID(ctx, sessionData.JobID)
	if err != nil {
		return clocksession.ClockOutResponse{}, err
	}

	sessionData.ClockOut = &nowUTC
	sessionData.IsActive = false
	if req.Notes != nil {
		sessionData.Notes = req.Notes
	}
	sessionData.ClockOutLatitude = req.Latitude
	sessionData.ClockOutLongitude = req.Longitude
	sessionData.ClockOutAccuracy = req.Accuracy
	sessionData.ClockOutDistanceMi = siteDistance(req.Latitude, req.Longitude, jobData)

	// The derived entry lands on the clock-in calendar date; the week lock of
	// that date decides whether hours reach the timesheet
	hours := timesheet.ClampHours(sessionData.DurationHours(nowUTC))
	entryDate := time.Date(
		sessionData.ClockIn.Year(), sessionData.ClockIn.Month(), sessionData.ClockIn.Day(),
		0, 0, 0, 0, time.UTC,
	)
	weekStart := utils.WeekStart(entryDate)

	var resp clocksession.ClockOutResponse
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.ClockSessionRepository.Close(txCtx, sessionData); err != nil {
			if errors.Is(err, clocksession.ErrSessionClosed) {
				return err
			}
			return fmt.Errorf("failed to close clock session: %w", err)
		}

		_, err := s.deviceLogRepo.Create(txCtx, devicelog.DeviceLog{
			UserID:    userID,
			SessionID: &sessionData.ID,
			Action:    devicelog.ActionClockOut,
			DeviceID:  req.DeviceID,
			UserAgent: strPtrOrNil(req.UserAgent),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
		})
		if err != nil {
			return fmt.Errorf("failed to record device log: %w", err)
		}

		locked, err := s.lockRepo.IsLocked(txCtx, userID, sessionData.JobID, weekStart)
		if err != nil {
			return fmt.Errorf("failed to check weekly approval lock: %w", err)
		}
		if locked {
			// The session still closes; only the timesheet write is skipped
			resp.Warning = fmt.Sprintf("week of %s is already approved; hours were not added to the timesheet", weekStart.Format("2006-01-02"))
			return nil
		}

		entry, err := s.entryRepo.Upsert(txCtx, timesheet.TimeEntry{
			UserID:          userID,
			JobID:           sessionData.JobID,
			LaborActivityID: sessionData.LaborActivityID,
			Date:            entryDate,
			Hours:           hours,
			Notes:           sessionData.Notes,
		})
		if err != nil {
			if errors.Is(err, timesheet.ErrEntryApproved) {
				resp.Warning = fmt.Sprintf("time entry for %s is already approved; hours were not added to the timesheet", entryDate.Format("2006-01-02"))
				return nil
			}
			return fmt.Errorf("failed to upsert time entry: %w", err)
		}

		resp.EntryCreated = true
		resp.EntryHours = &entry.Hours
		return nil
	})
	if err != nil {
		return clocksession.ClockOutResponse{}, err
	}

	resp.Session = clocksession.ToSessionResponse(sessionData, nowUTC)
	return resp, nil
}

// GetStatus implements clocksession.ClockSessionService.
func (s *ClockSessionServiceImpl) GetStatus(ctx context.Context) (clocksession.SessionStatusResponse, error) {
	nowUTC := time.Now().UTC()

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return clocksession.SessionStatusResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return clocksession.SessionStatusResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	worker, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return clocksession.SessionStatusResponse{}, err
	}

	open, err := s.ClockSessionRepository.GetOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, clocksession.ErrNoActiveSession) {
			resp := clocksession.SessionStatusResponse{
				HasOpenSession: false,
				CanClockIn:     worker.IsActive && worker.UsesClockIn,
				CanClockOut:    false,
				Message:        "ready to clock in",
			}
			if !worker.IsActive {
				resp.Message = "account is inactive"
			} else if !worker.UsesClockIn {
				resp.Message = "time is entered manually for this account"
			}
			return resp, nil
		}
		return clocksession.SessionStatusResponse{}, err
	}

	openResp := clocksession.ToSessionResponse(open, nowUTC)
	return clocksession.SessionStatusResponse{
		HasOpenSession: true,
		OpenSession:    &openResp,
		CanClockIn:     false,
		CanClockOut:    true,
		Message:        fmt.Sprintf("clocked in on %s since %s", open.JobCode, openResp.ClockIn),
	}, nil
}

// ListSessions implements clocksession.ClockSessionService.
func (s *ClockSessionServiceImpl) ListSessions(ctx context.Context, filter clocksession.SessionFilter) (clocksession.ListSessionsResponse, error) {
	if err := filter.Validate(); err != nil {
		return clocksession.ListSessionsResponse{}, err
	}
	nowUTC := time.Now().UTC()

	sessions, total, err := s.ClockSessionRepository.List(ctx, filter)
	if err != nil {
		return clocksession.ListSessionsResponse{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	responses := make([]clocksession.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, clocksession.ToSessionResponse(session, nowUTC))
	}

	return clocksession.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Sessions:   responses,
	}, nil
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewClockSessionService(
	db *database.DB,
	sessionRepository clocksession.ClockSessionRepository,
	userRepo user.UserRepository,
	jobRepo job.JobRepository,
	assignmentRepo job.JobAssignmentRepository,
	activityRepo activity.ActivityRepository,
	entryRepo timesheet.TimeEntryRepository,
	lockRepo timesheet.ApprovalLockRepository,
	deviceLogRepo devicelog.DeviceLogRepository,
) clocksession.ClockSessionService {
	return &ClockSessionServiceImpl{
		db:                     db,
		ClockSessionRepository: sessionRepository,
		userRepo:               userRepo,
		jobRepo:                jobRepo,
		assignmentRepo:         assignmentRepo,
		activityRepo:           activityRepo,
		entryRepo:              entryRepo,
		lockRepo:               lockRepo,
		deviceLogRepo:          deviceLogRepo,
	}
}
