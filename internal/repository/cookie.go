package repository

import (
	"context"

	"github.com/EzekielClervo/instagram/internal/domain"
)

// CookieRepository defines storage operations over session cookies.
type CookieRepository interface {
	CreateCookie(ctx context.Context, c *domain.Cookie) (*domain.Cookie, error)
	GetCookie(ctx context.Context, id int64) (*domain.Cookie, error)

	// GetCookiesByAccount returns an account's cookies in insertion order.
	GetCookiesByAccount(ctx context.Context, accountID int64) ([]*domain.Cookie, error)

	// CookiesForUser joins the user's accounts to their cookies and returns
	// the flattened set: accounts in ascending id order, each account's
	// cookies in ascending id order. The first entry is the deterministic
	// oldest-inserted credential the dispatcher uses.
	CookiesForUser(ctx context.Context, userID int64) ([]*domain.Cookie, error)

	UpdateCookie(ctx context.Context, c *domain.Cookie) error
	DeleteCookie(ctx context.Context, id int64) error
}
