package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/repository"
)

// EnsureAdminUser creates the admin account on first run. Idempotent: if a
// user with that username already exists, nothing changes.
func EnsureAdminUser(ctx context.Context, store repository.Store, username, password, email string) error {
	_, err := store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := store.CreateUser(ctx, &domain.User{
		Username: username,
		Email:    email,
		Password: hashed,
		IsAdmin:  true,
	}); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("auth: seeded admin user %q", username)
	return nil
}
