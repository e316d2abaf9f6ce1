package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

// ===== USER REPOSITORY TESTS =====

func TestUserRepository_Create_Success(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	hashed, err := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashedStr := string(hashed)

	created, err := userRepo.Create(ctx, user.User{
		Name:         "Miguel Torres",
		Email:        "miguel@example.com",
		PasswordHash: &hashedStr,
		Role:         user.RoleWorker,
		UsesClockIn:  true,
		BurdenRate:   42.50,
		IsActive:     true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.RoleWorker, created.Role)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	seeded := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	userRepo := postgresql.NewUserRepository(testDB)

	fetched, err := userRepo.GetByEmail(ctx, "miguel@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, fetched.ID)

	_, err = userRepo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	userRepo := postgresql.NewUserRepository(testDB)

	exists, err := userRepo.ExistsByEmail(ctx, "miguel@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = userRepo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	seeded := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	userRepo := postgresql.NewUserRepository(testDB)

	seeded.Role = user.RoleForeman
	seeded.BurdenRate = 55.00
	updated, err := userRepo.Update(ctx, seeded)
	require.NoError(t, err)
	assert.Equal(t, user.RoleForeman, updated.Role)

	fetched, err := userRepo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.00, fetched.BurdenRate)

	missing := seeded
	missing.ID = "00000000-0000-0000-0000-000000000000"
	_, err = userRepo.Update(ctx, missing)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_SetActive(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	seeded := createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	userRepo := postgresql.NewUserRepository(testDB)

	require.NoError(t, userRepo.SetActive(ctx, seeded.ID, false))

	fetched, err := userRepo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)

	err = userRepo.SetActive(ctx, "00000000-0000-0000-0000-000000000000", true)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_List_FilterByRole(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	createTestWorker(t, ctx, "Miguel Torres", "miguel@example.com", user.RoleWorker)
	createTestWorker(t, ctx, "Dana Whitfield", "dana@example.com", user.RoleWorker)
	createTestWorker(t, ctx, "Ray Delgado", "ray@example.com", user.RoleForeman)
	userRepo := postgresql.NewUserRepository(testDB)

	workers, err := userRepo.List(ctx, user.WorkerFilter{Role: string(user.RoleWorker)})
	require.NoError(t, err)
	require.Len(t, workers, 2)
	// Rows come back name-ordered
	assert.Equal(t, "Dana Whitfield", workers[0].Name)
	assert.Equal(t, "Miguel Torres", workers[1].Name)

	all, err := userRepo.List(ctx, user.WorkerFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
