package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sitecrew/labortrack-backend-go/internal/config"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/clocksession"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/devicelog"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

// ClockSessionJobs closes forgotten clock sessions and prunes the device
// audit trail.
type ClockSessionJobs struct {
	sessionRepo   clocksession.ClockSessionRepository
	entryRepo     timesheet.TimeEntryRepository
	lockRepo      timesheet.ApprovalLockRepository
	deviceLogRepo devicelog.DeviceLogRepository
	db            *database.DB
	cfg           config.SweepConfig
}

func NewClockSessionJobs(
	sessionRepo clocksession.ClockSessionRepository,
	entryRepo timesheet.TimeEntryRepository,
	lockRepo timesheet.ApprovalLockRepository,
	deviceLogRepo devicelog.DeviceLogRepository,
	db *database.DB,
	cfg config.SweepConfig,
) *ClockSessionJobs {
	return &ClockSessionJobs{
		sessionRepo:   sessionRepo,
		entryRepo:     entryRepo,
		lockRepo:      lockRepo,
		deviceLogRepo: deviceLogRepo,
		db:            db,
		cfg:           cfg,
	}
}

func (j *ClockSessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", j.cfg.Interval, j.AutoCloseStaleSessions)
	scheduler.AddJob("prune_device_logs", 24*time.Hour, j.PruneDeviceLogs)
}

// AutoCloseStaleSessions force-closes sessions whose clock-in is older than
// the maximum session duration: clock_out = clock_in + max duration, so the
// result does not depend on when the sweep actually ran. The derived time
// entry goes through the same conditional upsert as a manual clock-out; a
// locked week skips the entry but never the close. The whole batch commits
// or rolls back together, and a failed batch is retried on the next tick.
func (j *ClockSessionJobs) AutoCloseStaleSessions(ctx context.Context) error {
	nowUTC := time.Now().UTC()
	cutoff := nowUTC.Add(-j.cfg.MaxSessionDuration)

	staleSessions, err := j.sessionRepo.GetStaleActive(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}
	if len(staleSessions) == 0 {
		return nil
	}

	slog.Info("Cron: Closing stale clock sessions", "count", len(staleSessions))

	closedCount := 0
	skippedEntries := 0
	err = postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, sessionData := range staleSessions {
			clockOut := sessionData.ClockIn.Add(j.cfg.MaxSessionDuration)
			sessionData.ClockOut = &clockOut
			sessionData.IsActive = false

			if err := j.sessionRepo.Close(txCtx, sessionData); err != nil {
				// Closed by the worker between the scan and this write
				if errors.Is(err, clocksession.ErrSessionClosed) {
					continue
				}
				return fmt.Errorf("failed to close session %s: %w", sessionData.ID, err)
			}
			closedCount++

			hours := timesheet.ClampHours(sessionData.DurationHours(clockOut))
			entryDate := time.Date(
				sessionData.ClockIn.Year(), sessionData.ClockIn.Month(), sessionData.ClockIn.Day(),
				0, 0, 0, 0, time.UTC,
			)
			weekStart := utils.WeekStart(entryDate)

			locked, err := j.lockRepo.IsLocked(txCtx, sessionData.UserID, sessionData.JobID, weekStart)
			if err != nil {
				return fmt.Errorf("failed to check weekly lock: %w", err)
			}
			if locked {
				slog.Warn("Cron: Week approved; derived entry skipped",
					"session_id", sessionData.ID,
					"user_id", sessionData.UserID,
					"week_start", weekStart.Format("2006-01-02"))
				skippedEntries++
				continue
			}

			_, err = j.entryRepo.Upsert(txCtx, timesheet.TimeEntry{
				UserID:          sessionData.UserID,
				JobID:           sessionData.JobID,
				LaborActivityID: sessionData.LaborActivityID,
				Date:            entryDate,
				Hours:           hours,
				Notes:           sessionData.Notes,
			})
			if err != nil {
				if errors.Is(err, timesheet.ErrEntryApproved) {
					slog.Warn("Cron: Entry approved; derived hours skipped",
						"session_id", sessionData.ID,
						"user_id", sessionData.UserID,
						"date", entryDate.Format("2006-01-02"))
					skippedEntries++
					continue
				}
				return fmt.Errorf("failed to upsert derived entry for session %s: %w", sessionData.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Cron: Stale session sweep complete", "closed", closedCount, "entries_skipped", skippedEntries)
	return nil
}

// PruneDeviceLogs drops audit rows past the retention window.
func (j *ClockSessionJobs) PruneDeviceLogs(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.cfg.DeviceLogRetention)

	deleted, err := j.deviceLogRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune device logs: %w", err)
	}

	if deleted > 0 {
		slog.Info("Cron: Pruned device logs", "deleted", deleted)
	}
	return nil
}
