package repository

import (
	"context"

	"github.com/EzekielClervo/instagram/internal/domain"
)

// ActivityRepository defines storage operations over the audit log.
type ActivityRepository interface {
	CreateActivityLog(ctx context.Context, l *domain.ActivityLog) (*domain.ActivityLog, error)
	GetActivityLog(ctx context.Context, id int64) (*domain.ActivityLog, error)

	// ListActivityLogs returns the user's logs sorted by creation time,
	// most recent first; equal timestamps keep insertion order. limit <= 0
	// means no limit, otherwise the sorted list is truncated to limit rows.
	ListActivityLogs(ctx context.Context, userID int64, limit int) ([]*domain.ActivityLog, error)

	// UpdateActivityLogStatus flips the row with exactly that id to the given
	// status and restamps UpdatedAt. ErrLogNotFound for a missing id.
	UpdateActivityLogStatus(ctx context.Context, id int64, status domain.ActivityStatus) error

	DeleteActivityLog(ctx context.Context, id int64) error
}
