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

// ===== APPROVAL LOCK REPOSITORY TESTS =====

func TestApprovalLockRepository_Create_DuplicateRejected(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	lockRepo := postgresql.NewApprovalLockRepository(testDB)

	lock := timesheet.WeeklyApprovalLock{
		UserID:     worker.ID,
		JobID:      jobData.ID,
		WeekStart:  mustDate(t, "2025-06-02"),
		ApprovedBy: foreman.ID,
		ApprovedAt: time.Now().UTC(),
	}

	created, err := lockRepo.Create(ctx, lock)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Second approval of the same worker week loses on the unique constraint
	_, err = lockRepo.Create(ctx, lock)
	assert.ErrorIs(t, err, timesheet.ErrWeekAlreadyApproved)
}

func TestApprovalLockRepository_IsLocked(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	lockRepo := postgresql.NewApprovalLockRepository(testDB)

	weekStart := mustDate(t, "2025-06-02")
	locked, err := lockRepo.IsLocked(ctx, worker.ID, jobData.ID, weekStart)
	require.NoError(t, err)
	assert.False(t, locked)

	_, err = lockRepo.Create(ctx, timesheet.WeeklyApprovalLock{
		UserID:     worker.ID,
		JobID:      jobData.ID,
		WeekStart:  weekStart,
		ApprovedBy: foreman.ID,
		ApprovedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	locked, err = lockRepo.IsLocked(ctx, worker.ID, jobData.ID, weekStart)
	require.NoError(t, err)
	assert.True(t, locked)

	// The adjacent week is untouched
	locked, err = lockRepo.IsLocked(ctx, worker.ID, jobData.ID, weekStart.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestApprovalLockRepository_Get(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	lockRepo := postgresql.NewApprovalLockRepository(testDB)

	weekStart := mustDate(t, "2025-06-02")
	_, err := lockRepo.Get(ctx, worker.ID, jobData.ID, weekStart)
	assert.ErrorIs(t, err, timesheet.ErrLockNotFound)

	_, err = lockRepo.Create(ctx, timesheet.WeeklyApprovalLock{
		UserID:     worker.ID,
		JobID:      jobData.ID,
		WeekStart:  weekStart,
		ApprovedBy: foreman.ID,
		ApprovedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	fetched, err := lockRepo.Get(ctx, worker.ID, jobData.ID, weekStart)
	require.NoError(t, err)
	assert.Equal(t, foreman.ID, fetched.ApprovedBy)
	assert.Equal(t, "Ray Delgado", fetched.ApproverName)
}
