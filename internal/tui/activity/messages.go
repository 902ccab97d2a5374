package activity

import (
	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/instagram"
)

// Message types for async operations

type logsLoadedMsg struct {
	logs []*domain.ActivityLog
	err  error
}

type accountsLoadedMsg struct {
	accounts []*domain.Account
	err      error
}

type runCompleteMsg struct {
	outcome *instagram.Outcome
	err     error
}

type accountDeletedMsg struct {
	err error
}
