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

type cookieRow struct {
	ID        int64  `db:"id"`
	AccountID int64  `db:"account_id"`
	Value     string `db:"value"`
	Active    int    `db:"active"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func cookieRowToDomain(row *cookieRow) *domain.Cookie {
	return &domain.Cookie{
		ID:        row.ID,
		AccountID: row.AccountID,
		Value:     row.Value,
		Active:    row.Active == 1,
		CreatedAt: time.Unix(row.CreatedAt, 0),
		UpdatedAt: time.Unix(row.UpdatedAt, 0),
	}
}

func cookieRowsToDomain(rows []cookieRow) []*domain.Cookie {
	cookies := make([]*domain.Cookie, 0, len(rows))
	for i := range rows {
		cookies = append(cookies, cookieRowToDomain(&rows[i]))
	}
	return cookies
}

func (s *Store) CreateCookie(ctx context.Context, c *domain.Cookie) (*domain.Cookie, error) {
	now := time.Now()
	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO cookies (account_id, value, active, created_at, updated_at)
		VALUES (:account_id, :value, :active, :created_at, :updated_at)
	`, map[string]interface{}{
		"account_id": c.AccountID,
		"value":      c.Value,
		"active":     boolToInt(c.Active),
		"created_at": now.Unix(),
		"updated_at": now.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert cookie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	stored := *c
	stored.ID = id
	stored.CreatedAt = time.Unix(now.Unix(), 0)
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (s *Store) GetCookie(ctx context.Context, id int64) (*domain.Cookie, error) {
	var row cookieRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM cookies WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCookieNotFound
		}
		return nil, fmt.Errorf("get cookie: %w", err)
	}
	return cookieRowToDomain(&row), nil
}

func (s *Store) GetCookiesByAccount(ctx context.Context, accountID int64) ([]*domain.Cookie, error) {
	var rows []cookieRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM cookies WHERE account_id = ? ORDER BY id`, accountID); err != nil {
		return nil, fmt.Errorf("get cookies by account: %w", err)
	}
	return cookieRowsToDomain(rows), nil
}

// CookiesForUser flattens the user's accounts to their cookies: accounts
// oldest first, each account's cookies oldest first.
func (s *Store) CookiesForUser(ctx context.Context, userID int64) ([]*domain.Cookie, error) {
	var rows []cookieRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT c.id, c.account_id, c.value, c.active, c.created_at, c.updated_at
		FROM cookies c
		JOIN accounts a ON c.account_id = a.id
		WHERE a.user_id = ?
		ORDER BY a.id, c.id
	`, userID); err != nil {
		return nil, fmt.Errorf("cookies for user: %w", err)
	}
	return cookieRowsToDomain(rows), nil
}

func (s *Store) UpdateCookie(ctx context.Context, c *domain.Cookie) error {
	result, err := s.db.NamedExecContext(ctx, `
		UPDATE cookies
		SET account_id = :account_id, value = :value, active = :active,
		    updated_at = :updated_at
		WHERE id = :id
	`, map[string]interface{}{
		"id":         c.ID,
		"account_id": c.AccountID,
		"value":      c.Value,
		"active":     boolToInt(c.Active),
		"updated_at": time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("update cookie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrCookieNotFound
	}
	return nil
}

func (s *Store) DeleteCookie(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cookie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrCookieNotFound
	}
	return nil
}
