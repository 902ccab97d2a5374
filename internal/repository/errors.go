package repository

import "errors"

// Sentinel errors shared by every store backend. Lookups for missing ids
// return these rather than driver-specific errors so callers can branch on
// them with errors.Is.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrCookieNotFound  = errors.New("cookie not found")
	ErrLogNotFound     = errors.New("activity log not found")

	ErrUsernameTaken = errors.New("username already exists")
)
