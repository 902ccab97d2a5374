package domain

import "time"

// ActivityStatus is the lifecycle of one automation attempt.
type ActivityStatus string

const (
	StatusPending ActivityStatus = "pending"
	StatusSuccess ActivityStatus = "success"
	StatusFailed  ActivityStatus = "failed"
)

// ActivityLog is the audit record of one dispatched automation attempt.
// It is created pending before the external call runs and flipped to a
// terminal status exactly once afterwards.
type ActivityLog struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	Type        ActionKind     `json:"type"`
	Description string         `json:"action"`
	Status      ActivityStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// IsTerminal reports whether the attempt has finished, either way.
func (l *ActivityLog) IsTerminal() bool {
	return l.Status == StatusSuccess || l.Status == StatusFailed
}
