package auth

import (
	"context"
	"testing"

	domain "arcbank/internal/errors"
	"arcbank/internal/models"
	"arcbank/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) InvalidateCache(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &models.User{
		ID:           1,
		Email:        "user@example.com",
		Password:     string(hash),
		Role:         "user",
		TokenVersion: 2,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "user@example.com").
			Return(testUser(t, "hunter22"), nil)

		s := NewService(repo)
		user, access, refresh, err := s.Login(context.Background(), "user@example.com", "hunter22")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password fails with auth error", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "user@example.com").
			Return(testUser(t, "hunter22"), nil)

		s := NewService(repo)
		_, _, _, err := s.Login(context.Background(), "user@example.com", "wrong")

		assert.ErrorIs(t, err, domain.ErrAuthFailure)
	})

	t.Run("unknown email fails with the same auth error", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, repositories.ErrUserNotFound)

		s := NewService(repo)
		_, _, _, err := s.Login(context.Background(), "nobody@example.com", "hunter22")

		assert.ErrorIs(t, err, domain.ErrAuthFailure)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	login := func(t *testing.T, repo *MockUserRepo) string {
		repo.On("GetByEmail", mock.Anything, "user@example.com").
			Return(testUser(t, "hunter22"), nil)
		s := NewService(repo)
		_, access, _, err := s.Login(context.Background(), "user@example.com", "hunter22")
		assert.NoError(t, err)
		return access
	}

	t.Run("valid token yields the user claims", func(t *testing.T) {
		repo := new(MockUserRepo)
		access := login(t, repo)
		repo.On("GetByID", mock.Anything, uint(1)).Return(testUser(t, "hunter22"), nil)

		s := NewService(repo)
		claims, err := s.ValidateToken(context.Background(), access)

		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "user", claims.Role)
		assert.True(t, claims.HasPermission(models.PermissionTransferWrite))
	})

	t.Run("garbage token is refused", func(t *testing.T) {
		s := NewService(new(MockUserRepo))
		_, err := s.ValidateToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, domain.ErrAuthFailure)
	})

	t.Run("bumped token version invalidates outstanding tokens", func(t *testing.T) {
		repo := new(MockUserRepo)
		access := login(t, repo)

		rotated := testUser(t, "hunter22")
		rotated.TokenVersion = 3
		repo.On("GetByID", mock.Anything, uint(1)).Return(rotated, nil)

		s := NewService(repo)
		_, err := s.ValidateToken(context.Background(), access)

		assert.ErrorIs(t, err, domain.ErrAuthFailure)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := new(MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "user@example.com").
		Return(testUser(t, "hunter22"), nil)
	repo.On("GetByID", mock.Anything, uint(1)).Return(testUser(t, "hunter22"), nil)

	s := NewService(repo)
	_, _, refresh, err := s.Login(context.Background(), "user@example.com", "hunter22")
	assert.NoError(t, err)

	access2, refresh2, err := s.RefreshTokens(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)
}
