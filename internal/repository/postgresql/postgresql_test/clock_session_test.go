package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/clocksession"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

// ===== CLOCK SESSION REPOSITORY TESTS =====

func TestClockSessionRepository_Create_Success(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	sessionRepo := postgresql.NewClockSessionRepository(testDB)

	created, err := sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		ClockIn:         time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.ClockOut)
}

func TestClockSessionRepository_Create_SecondOpenRejected(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	otherJob := createTestJob(t, ctx, "JOB-200", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	sessionRepo := postgresql.NewClockSessionRepository(testDB)

	_, err := sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		ClockIn:         time.Now().UTC(),
	})
	require.NoError(t, err)

	// Second open session for the same worker, even on another job
	_, err = sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          worker.ID,
		JobID:           otherJob.ID,
		LaborActivityID: activityID,
		ClockIn:         time.Now().UTC(),
	})
	assert.ErrorIs(t, err, clocksession.ErrSessionAlreadyActive)
}

func TestClockSessionRepository_Create_ConcurrentOpensAllowOne(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	sessionRepo := postgresql.NewClockSessionRepository(testDB)

	const attempts = 5
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sessionRepo.Create(ctx, clocksession.ClockSession{
				UserID:          worker.ID,
				JobID:           jobData.ID,
				LaborActivityID: activityID,
				ClockIn:         time.Now().UTC(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	rejected := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, clocksession.ErrSessionAlreadyActive)
		rejected++
	}
	assert.Equal(t, 1, succeeded, "exactly one open should win the race")
	assert.Equal(t, attempts-1, rejected)
}

func TestClockSessionRepository_Close_Success(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	sessionRepo := postgresql.NewClockSessionRepository(testDB)

	clockIn := time.Now().UTC().Add(-8 * time.Hour)
	created, err := sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		ClockIn:         clockIn,
	})
	require.NoError(t, err)

	clockOut := time.Now().UTC()
	created.ClockOut = &clockOut
	err = sessionRepo.Close(ctx, created)
	require.NoError(t, err)

	fetched, err := sessionRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)
	require.NotNil(t, fetched.ClockOut)
	assert.WithinDuration(t, clockOut, *fetched.ClockOut, time.Second)

	// Closing again hits zero rows
	err = sessionRepo.Close(ctx, created)
	assert.ErrorIs(t, err, clocksession.ErrSessionClosed)
}

func TestClockSessionRepository_GetOpenByUser(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	sessionRepo := postgresql.NewClockSessionRepository(testDB)

	_, err := sessionRepo.GetOpenByUser(ctx, worker.ID)
	assert.ErrorIs(t, err, clocksession.ErrNoActiveSession)

	created, err := sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		ClockIn:         time.Now().UTC(),
	})
	require.NoError(t, err)

	open, err := sessionRepo.GetOpenByUser(ctx, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, open.ID)
	assert.Equal(t, "JOB-100", open.JobCode)
	assert.Equal(t, "Formwork", open.ActivityName)

	clockOut := time.Now().UTC()
	created.ClockOut = &clockOut
	require.NoError(t, sessionRepo.Close(ctx, created))

	_, err = sessionRepo.GetOpenByUser(ctx, worker.ID)
	assert.ErrorIs(t, err, clocksession.ErrNoActiveSession)
}

func TestClockSessionRepository_GetStaleActive(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	stale := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	fresh := createTestWorker(t, ctx, "Dana Whitfield", "dana@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	sessionRepo := postgresql.NewClockSessionRepository(testDB)

	old, err := sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          stale.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		ClockIn:         time.Now().UTC().Add(-20 * time.Hour),
	})
	require.NoError(t, err)

	_, err = sessionRepo.Create(ctx, clocksession.ClockSession{
		UserID:          fresh.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		ClockIn:         time.Now().UTC().Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	cutoff := time.Now().UTC().Add(-16 * time.Hour)
	staleSessions, err := sessionRepo.GetStaleActive(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, staleSessions, 1)
	assert.Equal(t, old.ID, staleSessions[0].ID)
}
