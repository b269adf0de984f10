package identity

import (
	"context"
	"testing"
	"time"

	"github.com/propman/backend/internal/domain/identity"
	"github.com/propman/backend/internal/infrastructure/auth"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (*AuthService, *MockUserRepository) {
	t.Helper()
	repo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "propman-test",
		MaxRefreshCount:        10,
	})
	service := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), AuthServiceConfig{
		MaxLoginAttempts: 3,
		LockDuration:     15 * time.Minute,
	}, zap.NewNop())
	return service, repo
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("ops.admin", "Passw0rd123", identity.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		result, err := service.Login(ctx, LoginInput{
			Username: "ops.admin",
			Password: "Passw0rd123",
			IP:       "10.0.0.5",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, identity.RoleAdmin, result.User.Role)
		assert.Equal(t, "10.0.0.5", user.LastLoginIP)
	})

	t.Run("unknown username", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, nil)

		_, err := service.Login(ctx, LoginInput{Username: "ghost", Password: "whatever1"})
		assert.ErrorContains(t, err, "Invalid username or password")
	})

	t.Run("wrong password increments failure count", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		_, err := service.Login(ctx, LoginInput{Username: "ops.admin", Password: "wrong-pass1"})
		assert.ErrorContains(t, err, "Invalid username or password")
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("account locks after repeated failures", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		var err error
		for i := 0; i < 3; i++ {
			_, err = service.Login(ctx, LoginInput{Username: "ops.admin", Password: "wrong-pass1"})
		}
		assert.ErrorContains(t, err, "locked")
		assert.True(t, user.IsLocked())

		// Even the right password is rejected while locked
		_, err = service.Login(ctx, LoginInput{Username: "ops.admin", Password: "Passw0rd123"})
		assert.ErrorContains(t, err, "locked")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)
		require.NoError(t, user.Deactivate())

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)

		_, err := service.Login(ctx, LoginInput{Username: "ops.admin", Password: "Passw0rd123"})
		assert.ErrorContains(t, err, "deactivated")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges a valid refresh token", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		login, err := service.Login(ctx, LoginInput{Username: "ops.admin", Password: "Passw0rd123"})
		require.NoError(t, err)

		refreshed, err := service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		service, _ := newAuthFixture(t)
		_, err := service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "nope"})
		assert.Error(t, err)
	})

	t.Run("rejects refresh for a deactivated user", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		login, err := service.Login(ctx, LoginInput{Username: "ops.admin", Password: "Passw0rd123"})
		require.NoError(t, err)

		require.NoError(t, user.Deactivate())
		_, err = service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		assert.ErrorContains(t, err, "no longer active")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked refresh token cannot be exchanged again", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByUsername", ctx, "ops.admin").Return(user, nil)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		login, err := service.Login(ctx, LoginInput{Username: "ops.admin", Password: "Passw0rd123"})
		require.NoError(t, err)

		claims, err := service.jwtService.ValidateRefreshToken(login.RefreshToken)
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, LogoutInput{
			UserID:     user.ID,
			RefreshJTI: claims.ID,
			RefreshTTL: claims.GetRemainingTTL(),
		}))

		_, err = service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		assert.ErrorContains(t, err, "revoked")
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password when the old one matches", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		err := service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "Passw0rd123",
			NewPassword: "NewPassw0rd456",
		})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassw0rd456"))
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		service, repo := newAuthFixture(t)
		user := newActiveUser(t)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "not-the-one1",
			NewPassword: "NewPassw0rd456",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
