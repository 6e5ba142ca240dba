package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"outreach_backend/internal/feature/auth/domain/entity"
	"outreach_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")
	return db
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		user := &entity.User{Email: " Matis@Club.test ", Password: "hashed_password"}
		require.NoError(t, repo.Create(context.Background(), user))

		assert.NotZero(t, user.ID, "ID is not set")
		assert.Equal(t, "matis@club.test", user.Email)
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, &entity.User{Email: "matis@club.test", Password: "a"}))
		err := repo.Create(ctx, &entity.User{Email: "MATIS@club.test", Password: "b"})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_Find(t *testing.T) {
	repo := NewUserGorm(setupTestDB(t))
	ctx := context.Background()

	user := &entity.User{Email: "matis@club.test", Password: "hashed_password"}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "Matis@Club.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "matis@club.test", byID.Email)

	_, err = repo.FindByEmail(ctx, "nobody@club.test")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
