package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/identity"
)

// LoginInput contains login credentials
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// UserInfo is the user payload returned to authenticated clients
type UserInfo struct {
	ID          uuid.UUID     `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	Role        identity.Role `json:"role"`
}

// LoginResult contains the issued tokens and user info
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the new token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being ended
type LogoutInput struct {
	UserID     uuid.UUID
	AccessJTI  string
	AccessTTL  time.Duration
	RefreshJTI string
	RefreshTTL time.Duration
}

// ChangePasswordInput contains a password change request
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the fields for a new back-office account
type CreateUserInput struct {
	Username    string
	Password    string
	Role        identity.Role
	Email       string
	DisplayName string
}

func userInfoOf(user *identity.User) UserInfo {
	displayName := user.DisplayName
	if displayName == "" {
		displayName = user.Username
	}
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: displayName,
		Email:       user.Email,
		Role:        user.Role,
	}
}
