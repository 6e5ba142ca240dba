package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"outreach_backend/internal/feature/auth/domain"
	"outreach_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a func-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(context.Context, uint) (*entity.User, error) {
	return nil, ErrUserNotFound
}

// mockJWTGenerator is a func-field mock of JWTGenerator.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup hashes password", func(t *testing.T) {
		var stored *entity.User
		repo := &mockUserRepository{CreateFunc: func(_ context.Context, u *entity.User) error {
			stored = u
			return nil
		}}

		err := NewAuthUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), " matis@club.test ", "password123")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "matis@club.test", stored.Email)
		assert.NotEqual(t, "password123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
	})

	t.Run("weak password", func(t *testing.T) {
		called := false
		repo := &mockUserRepository{CreateFunc: func(context.Context, *entity.User) error {
			called = true
			return nil
		}}

		err := NewAuthUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), "matis@club.test", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.False(t, called)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepository{CreateFunc: func(context.Context, *entity.User) error {
			return ErrEmailAlreadyExists
		}}

		err := NewAuthUsecase(repo, &mockJWTGenerator{}).Signup(context.Background(), "matis@club.test", "password123")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{ID: 3, Email: "matis@club.test", Password: string(hashed)}
	found := func(context.Context, string) (*entity.User, error) { return user, nil }

	t.Run("successful login", func(t *testing.T) {
		jwtGen := &mockJWTGenerator{GenerateTokenFunc: func(userID uint, email string) (string, error) {
			assert.Equal(t, uint(3), userID)
			assert.Equal(t, "matis@club.test", email)
			return "signed-token", nil
		}}

		token, err := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: found}, jwtGen).
			Login(context.Background(), "matis@club.test", "password123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	})

	t.Run("user not found", func(t *testing.T) {
		_, err := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{}).
			Login(context.Background(), "nobody@club.test", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("incorrect password", func(t *testing.T) {
		_, err := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: found}, &mockJWTGenerator{}).
			Login(context.Background(), "matis@club.test", "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("repository failure is not reported as bad credentials", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := &mockUserRepository{FindByEmailFunc: func(context.Context, string) (*entity.User, error) {
			return nil, dbErr
		}}

		_, err := NewAuthUsecase(repo, &mockJWTGenerator{}).Login(context.Background(), "matis@club.test", "password123")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		jwtGen := &mockJWTGenerator{GenerateTokenFunc: func(uint, string) (string, error) {
			return "", errors.New("signing failed")
		}}

		_, err := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: found}, jwtGen).
			Login(context.Background(), "matis@club.test", "password123")
		assert.ErrorContains(t, err, "failed to generate token")
	})
}
