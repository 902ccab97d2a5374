// Package automation dispatches user-requested Instagram actions: it
// validates the request, picks the session credential, records an audit
// log row, runs the action, and settles the row to its terminal status.
package automation

import (
	"context"
	"fmt"
	"log"

	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/instagram"
	"github.com/EzekielClervo/instagram/internal/repository"
)

// Runner executes automation requests against a store and an Instagram
// client.
type Runner struct {
	store  repository.Store
	client *instagram.Client
}

// NewRunner creates a Runner.
func NewRunner(store repository.Store, client *instagram.Client) *Runner {
	return &Runner{store: store, client: client}
}

// Dispatch runs one automation request for a user.
//
// Rejections (unknown kind, missing parameter, no stored cookies) return a
// client error before anything is logged. Once a request is accepted, a
// pending activity log row is written, the action runs, and that same row
// is flipped to success or failed according to the outcome. The outcome is
// returned regardless of how the action went; a non-nil error alongside it
// means storage misbehaved.
func (r *Runner) Dispatch(ctx context.Context, userID int64, req Request) (instagram.Outcome, error) {
	kind, err := domain.ParseActionKind(req.Type)
	if err != nil {
		return instagram.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, req.Type)
	}
	act := actions[kind]

	if err := act.validate(req); err != nil {
		return instagram.Outcome{}, err
	}

	creds, err := r.store.CookiesForUser(ctx, userID)
	if err != nil {
		return instagram.Outcome{}, fmt.Errorf("load cookies: %w", err)
	}
	if len(creds) == 0 {
		return instagram.Outcome{}, ErrNoCookies
	}
	// Oldest stored credential wins.
	cookieStr := creds[0].Value

	entry, err := r.store.CreateActivityLog(ctx, &domain.ActivityLog{
		UserID:      userID,
		Type:        kind,
		Description: act.describe(req),
		Status:      domain.StatusPending,
	})
	if err != nil {
		return instagram.Outcome{}, fmt.Errorf("create activity log: %w", err)
	}

	out := act.run(ctx, r.client, req, cookieStr)

	status := domain.StatusFailed
	if out.Success {
		status = domain.StatusSuccess
	}
	if err := r.store.UpdateActivityLogStatus(ctx, entry.ID, status); err != nil {
		log.Printf("automation: settle log %d: %v", entry.ID, err)
		return out, fmt.Errorf("update activity log: %w", err)
	}
	return out, nil
}
