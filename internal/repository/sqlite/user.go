package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/repository"
)

type userRow struct {
	ID        int64  `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	Password  string `db:"password"`
	IsAdmin   int    `db:"is_admin"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func userRowToDomain(row *userRow) *domain.User {
	return &domain.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		Password:  row.Password,
		IsAdmin:   row.IsAdmin == 1,
		CreatedAt: time.Unix(row.CreatedAt, 0),
		UpdatedAt: time.Unix(row.UpdatedAt, 0),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CreateUser inserts a new user. The username column is COLLATE NOCASE with a
// unique index, so the duplicate check matches the in-memory backend.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	var count int
	if err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM users WHERE username = ?`, u.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, repository.ErrUsernameTaken
	}

	now := time.Now()
	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (username, email, password, is_admin, created_at, updated_at)
		VALUES (:username, :email, :password, :is_admin, :created_at, :updated_at)
	`, map[string]interface{}{
		"username":   u.Username,
		"email":      u.Email,
		"password":   u.Password,
		"is_admin":   boolToInt(u.IsAdmin),
		"created_at": now.Unix(),
		"updated_at": now.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	stored := *u
	stored.ID = id
	stored.CreatedAt = time.Unix(now.Unix(), 0)
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return userRowToDomain(&row), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM users WHERE username = ?`, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return userRowToDomain(&row), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, userRowToDomain(&rows[i]))
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	result, err := s.db.NamedExecContext(ctx, `
		UPDATE users
		SET username = :username, email = :email, password = :password,
		    is_admin = :is_admin, updated_at = :updated_at
		WHERE id = :id
	`, map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"password":   u.Password,
		"is_admin":   boolToInt(u.IsAdmin),
		"updated_at": time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user and everything it owns in one transaction:
// cookies under the user's accounts, the accounts, the activity logs, then
// the user row.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if count == 0 {
		return repository.ErrUserNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cookies
		WHERE account_id IN (SELECT id FROM accounts WHERE user_id = ?)
	`, id); err != nil {
		return fmt.Errorf("delete user cookies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete user accounts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_logs WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete user activity logs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return tx.Commit()
}
