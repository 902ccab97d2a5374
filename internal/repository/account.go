package repository

import (
	"context"

	"github.com/EzekielClervo/instagram/internal/domain"
)

// AccountRepository defines storage operations over Instagram accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, a *domain.Account) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)

	// GetAccountsByUser returns the user's accounts in insertion order.
	GetAccountsByUser(ctx context.Context, userID int64) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, a *domain.Account) error

	// DeleteAccount cascades: all cookies referencing the account are removed
	// before the account row itself.
	DeleteAccount(ctx context.Context, id int64) error
}
