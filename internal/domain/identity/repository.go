package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// UserRepository persists back-office users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, int64, error)
	Save(ctx context.Context, user *User) error
}
