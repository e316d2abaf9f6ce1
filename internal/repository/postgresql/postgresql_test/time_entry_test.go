package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

// ===== TIME ENTRY REPOSITORY TESTS =====

func TestTimeEntryRepository_Upsert_InsertThenOverwrite(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	entryRepo := postgresql.NewTimeEntryRepository(testDB)

	entry := timesheet.TimeEntry{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		Date:            mustDate(t, "2025-06-02"),
		Hours:           8.0,
	}

	first, err := entryRepo.Upsert(ctx, entry)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Approved)

	// Same ledger key, corrected hours
	entry.Hours = 6.5
	second, err := entryRepo.Upsert(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert must overwrite, not duplicate")

	fetched, err := entryRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.5, fetched.Hours)
}

func TestTimeEntryRepository_Upsert_ApprovedRowRejected(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	entryRepo := postgresql.NewTimeEntryRepository(testDB)

	date := mustDate(t, "2025-06-02")
	entry := timesheet.TimeEntry{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		Date:            date,
		Hours:           8.0,
	}
	created, err := entryRepo.Upsert(ctx, entry)
	require.NoError(t, err)

	approved, err := entryRepo.ApproveRange(ctx, worker.ID, jobData.ID, date, date, foreman.ID, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, 1, approved)

	entry.Hours = 4.0
	_, err = entryRepo.Upsert(ctx, entry)
	assert.ErrorIs(t, err, timesheet.ErrEntryApproved)

	// Hours are untouched after the rejected write
	fetched, err := entryRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, fetched.Hours)
	assert.True(t, fetched.Approved)
}

func TestTimeEntryRepository_ApproveRange_CountsOnlyUnapproved(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	entryRepo := postgresql.NewTimeEntryRepository(testDB)

	weekStart := mustDate(t, "2025-06-02")
	for i := 0; i < 3; i++ {
		_, err := entryRepo.Upsert(ctx, timesheet.TimeEntry{
			UserID:          worker.ID,
			JobID:           jobData.ID,
			LaborActivityID: activityID,
			Date:            weekStart.AddDate(0, 0, i),
			Hours:           8.0,
		})
		require.NoError(t, err)
	}

	weekEnd := weekStart.AddDate(0, 0, 6)
	approved, err := entryRepo.ApproveRange(ctx, worker.ID, jobData.ID, weekStart, weekEnd, foreman.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 3, approved)

	// Second pass over the same week finds nothing left to approve
	approved, err = entryRepo.ApproveRange(ctx, worker.ID, jobData.ID, weekStart, weekEnd, foreman.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, approved)
}

func TestTimeEntryRepository_DeleteRange_SkipsApproved(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	entryRepo := postgresql.NewTimeEntryRepository(testDB)

	lockedDate := mustDate(t, "2025-06-02")
	openDate := mustDate(t, "2025-06-03")
	for _, d := range []time.Time{lockedDate, openDate} {
		_, err := entryRepo.Upsert(ctx, timesheet.TimeEntry{
			UserID:          worker.ID,
			JobID:           jobData.ID,
			LaborActivityID: activityID,
			Date:            d,
			Hours:           8.0,
		})
		require.NoError(t, err)
	}

	_, err := entryRepo.ApproveRange(ctx, worker.ID, jobData.ID, lockedDate, lockedDate, foreman.ID, time.Now().UTC())
	require.NoError(t, err)

	err = entryRepo.DeleteRange(ctx, worker.ID, jobData.ID, lockedDate, openDate)
	require.NoError(t, err)

	remaining, err := entryRepo.QueryRange(ctx, worker.ID, jobData.ID, lockedDate, openDate)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].Approved)
	assert.Equal(t, lockedDate, remaining[0].Date.UTC().Truncate(24*time.Hour))
}
