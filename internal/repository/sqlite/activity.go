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

type activityRow struct {
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	Type        string `db:"type"`
	Description string `db:"description"`
	Status      string `db:"status"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}

func activityRowToDomain(row *activityRow) *domain.ActivityLog {
	return &domain.ActivityLog{
		ID:          row.ID,
		UserID:      row.UserID,
		Type:        domain.ActionKind(row.Type),
		Description: row.Description,
		Status:      domain.ActivityStatus(row.Status),
		CreatedAt:   time.Unix(row.CreatedAt, 0),
		UpdatedAt:   time.Unix(row.UpdatedAt, 0),
	}
}

func (s *Store) CreateActivityLog(ctx context.Context, l *domain.ActivityLog) (*domain.ActivityLog, error) {
	now := time.Now()
	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO activity_logs (user_id, type, description, status, created_at, updated_at)
		VALUES (:user_id, :type, :description, :status, :created_at, :updated_at)
	`, map[string]interface{}{
		"user_id":     l.UserID,
		"type":        string(l.Type),
		"description": l.Description,
		"status":      string(l.Status),
		"created_at":  now.Unix(),
		"updated_at":  now.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert activity log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	stored := *l
	stored.ID = id
	stored.CreatedAt = time.Unix(now.Unix(), 0)
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (s *Store) GetActivityLog(ctx context.Context, id int64) (*domain.ActivityLog, error) {
	var row activityRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM activity_logs WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrLogNotFound
		}
		return nil, fmt.Errorf("get activity log: %w", err)
	}
	return activityRowToDomain(&row), nil
}

// ListActivityLogs orders by creation time descending; the id tiebreak keeps
// insertion order among rows created in the same second.
func (s *Store) ListActivityLogs(ctx context.Context, userID int64, limit int) ([]*domain.ActivityLog, error) {
	query := `
		SELECT * FROM activity_logs
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []activityRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}

	logs := make([]*domain.ActivityLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, activityRowToDomain(&rows[i]))
	}
	return logs, nil
}

func (s *Store) UpdateActivityLogStatus(ctx context.Context, id int64, status domain.ActivityStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE activity_logs SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("update activity log status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrLogNotFound
	}
	return nil
}

func (s *Store) DeleteActivityLog(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM activity_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete activity log: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrLogNotFound
	}
	return nil
}
