package repository

import (
	"context"

	"github.com/EzekielClervo/instagram/internal/domain"
)

// UserRepository defines storage operations over panel users.
type UserRepository interface {
	// CreateUser assigns the next id, stamps timestamps and stores the user.
	// Fails with ErrUsernameTaken if the username is already in use
	// (case-insensitive).
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error

	// DeleteUser cascades: every account owned by the user (and therefore
	// every cookie under those accounts) and every activity log owned by the
	// user is removed before the user row itself.
	DeleteUser(ctx context.Context, id int64) error
}
