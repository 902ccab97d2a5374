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

type accountRow struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	Password  string `db:"password"`
	Active    int    `db:"active"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func accountRowToDomain(row *accountRow) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		UserID:    row.UserID,
		Username:  row.Username,
		Email:     row.Email,
		Password:  row.Password,
		Active:    row.Active == 1,
		CreatedAt: time.Unix(row.CreatedAt, 0),
		UpdatedAt: time.Unix(row.UpdatedAt, 0),
	}
}

func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	now := time.Now()
	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO accounts (user_id, username, email, password, active, created_at, updated_at)
		VALUES (:user_id, :username, :email, :password, :active, :created_at, :updated_at)
	`, map[string]interface{}{
		"user_id":    a.UserID,
		"username":   a.Username,
		"email":      a.Email,
		"password":   a.Password,
		"active":     boolToInt(a.Active),
		"created_at": now.Unix(),
		"updated_at": now.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	stored := *a
	stored.ID = id
	stored.CreatedAt = time.Unix(now.Unix(), 0)
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	var row accountRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM accounts WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return accountRowToDomain(&row), nil
}

func (s *Store) GetAccountsByUser(ctx context.Context, userID int64) ([]*domain.Account, error) {
	var rows []accountRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM accounts WHERE user_id = ? ORDER BY id`, userID); err != nil {
		return nil, fmt.Errorf("get accounts by user: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, accountRowToDomain(&rows[i]))
	}
	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *domain.Account) error {
	result, err := s.db.NamedExecContext(ctx, `
		UPDATE accounts
		SET user_id = :user_id, username = :username, email = :email,
		    password = :password, active = :active, updated_at = :updated_at
		WHERE id = :id
	`, map[string]interface{}{
		"id":         a.ID,
		"user_id":    a.UserID,
		"username":   a.Username,
		"email":      a.Email,
		"password":   a.Password,
		"active":     boolToInt(a.Active),
		"updated_at": time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes the account's cookies first, then the account, in one
// transaction.
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if count == 0 {
		return repository.ErrAccountNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cookies WHERE account_id = ?`, id); err != nil {
		return fmt.Errorf("delete account cookies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	return tx.Commit()
}
