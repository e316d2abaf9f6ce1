package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/review"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

// ===== REVIEWED TIME REPOSITORY TESTS =====

func TestReviewedTimeRepository_Upsert_DraftReadBack(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	reviewedRepo := postgresql.NewReviewedTimeRepository(testDB)

	workDate := mustDate(t, "2025-06-03")
	created, err := reviewedRepo.Upsert(ctx, review.ForemanReviewedTime{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		WorkDate:        workDate,
		ReviewedHours:   5.75,
		ReviewedBy:      foreman.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	rows, err := reviewedRepo.Query(ctx, review.RangeFilter{
		UserID: &worker.ID,
		From:   workDate,
		To:     workDate,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5.75, rows[0].ReviewedHours)
	assert.Equal(t, "Ray Delgado", rows[0].ReviewerName)
	assert.Nil(t, rows[0].TimeEntryID)
}

func TestReviewedTimeRepository_Upsert_SameKeyOverwrites(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	second := createTestWorker(t, ctx, "Lena Ortiz", "lena@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	reviewedRepo := postgresql.NewReviewedTimeRepository(testDB)

	draft := review.ForemanReviewedTime{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		WorkDate:        mustDate(t, "2025-06-03"),
		ReviewedHours:   5.75,
		ReviewedBy:      foreman.ID,
	}
	first, err := reviewedRepo.Upsert(ctx, draft)
	require.NoError(t, err)

	// A later save by another reviewer replaces hours and attribution
	draft.ReviewedHours = 6.25
	draft.ReviewedBy = second.ID
	updated, err := reviewedRepo.Upsert(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	rows, err := reviewedRepo.Query(ctx, review.RangeFilter{
		UserID: &worker.ID,
		From:   draft.WorkDate,
		To:     draft.WorkDate,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6.25, rows[0].ReviewedHours)
	assert.Equal(t, "Lena Ortiz", rows[0].ReviewerName)
}

func TestReviewedTimeRepository_Delete(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	worker := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	foreman := createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	jobData := createTestJob(t, ctx, "JOB-100", nil)
	activityID := createTestActivity(t, ctx, "Concrete", "Formwork")
	reviewedRepo := postgresql.NewReviewedTimeRepository(testDB)

	workDate := mustDate(t, "2025-06-03")
	created, err := reviewedRepo.Upsert(ctx, review.ForemanReviewedTime{
		UserID:          worker.ID,
		JobID:           jobData.ID,
		LaborActivityID: activityID,
		WorkDate:        workDate,
		ReviewedHours:   5.75,
		ReviewedBy:      foreman.ID,
	})
	require.NoError(t, err)

	require.NoError(t, reviewedRepo.Delete(ctx, created.ID))

	rows, err := reviewedRepo.Query(ctx, review.RangeFilter{
		UserID: &worker.ID,
		From:   workDate,
		To:     workDate,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Deleting a missing draft reports not found
	err = reviewedRepo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
}
