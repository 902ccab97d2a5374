// Package memory implements repository.Store with in-process map tables.
// This is the default backend: state lives for the lifetime of the daemon.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/repository"
)

// Store holds one map per entity kind plus monotonic id counters. A single
// RWMutex guards every table so a cascading delete removes its whole
// dependent set before any other mutation can observe the store.
type Store struct {
	mu sync.RWMutex

	users    map[int64]*domain.User
	accounts map[int64]*domain.Account
	cookies  map[int64]*domain.Cookie
	logs     map[int64]*domain.ActivityLog

	nextUserID    int64
	nextAccountID int64
	nextCookieID  int64
	nextLogID     int64

	now func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty store. Ids start at 1 for every table.
func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*domain.User),
		accounts:      make(map[int64]*domain.Account),
		cookies:       make(map[int64]*domain.Cookie),
		logs:          make(map[int64]*domain.ActivityLog),
		nextUserID:    1,
		nextAccountID: 1,
		nextCookieID:  1,
		nextLogID:     1,
		now:           time.Now,
	}
}

// Close is a no-op for the in-memory backend.
func (s *Store) Close() error { return nil }

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return nil, repository.ErrUsernameTaken
		}
	}

	stored := *u
	stored.ID = s.nextUserID
	s.nextUserID++
	stored.CreatedAt = s.now()
	stored.UpdatedAt = stored.CreatedAt
	s.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out := *u
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	updated := *u
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.users[u.ID] = &updated
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	// Cascade: accounts (and their cookies), then activity logs, then the
	// user itself, all under the same critical section.
	for accID, acc := range s.accounts {
		if acc.UserID != id {
			continue
		}
		s.deleteAccountLocked(accID)
	}
	for logID, l := range s.logs {
		if l.UserID == id {
			delete(s.logs, logID)
		}
	}
	delete(s.users, id)
	return nil
}

// --- Accounts ---

func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *a
	stored.ID = s.nextAccountID
	s.nextAccountID++
	stored.CreatedAt = s.now()
	stored.UpdatedAt = stored.CreatedAt
	s.accounts[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

func (s *Store) GetAccountsByUser(ctx context.Context, userID int64) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountsByUserLocked(userID), nil
}

func (s *Store) accountsByUserLocked(userID int64) []*domain.Account {
	accounts := make([]*domain.Account, 0)
	for _, a := range s.accounts {
		if a.UserID == userID {
			out := *a
			accounts = append(accounts, &out)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

func (s *Store) UpdateAccount(ctx context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[a.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	updated := *a
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.accounts[a.ID] = &updated
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	s.deleteAccountLocked(id)
	return nil
}

// deleteAccountLocked removes an account and every cookie referencing it.
// Callers must hold mu.
func (s *Store) deleteAccountLocked(id int64) {
	for cookieID, c := range s.cookies {
		if c.AccountID == id {
			delete(s.cookies, cookieID)
		}
	}
	delete(s.accounts, id)
}

// --- Cookies ---

func (s *Store) CreateCookie(ctx context.Context, c *domain.Cookie) (*domain.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.ID = s.nextCookieID
	s.nextCookieID++
	stored.CreatedAt = s.now()
	stored.UpdatedAt = stored.CreatedAt
	s.cookies[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Store) GetCookie(ctx context.Context, id int64) (*domain.Cookie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cookies[id]
	if !ok {
		return nil, repository.ErrCookieNotFound
	}
	out := *c
	return &out, nil
}

func (s *Store) GetCookiesByAccount(ctx context.Context, accountID int64) ([]*domain.Cookie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cookiesByAccountLocked(accountID), nil
}

func (s *Store) cookiesByAccountLocked(accountID int64) []*domain.Cookie {
	cookies := make([]*domain.Cookie, 0)
	for _, c := range s.cookies {
		if c.AccountID == accountID {
			out := *c
			cookies = append(cookies, &out)
		}
	}
	sort.Slice(cookies, func(i, j int) bool { return cookies[i].ID < cookies[j].ID })
	return cookies
}

func (s *Store) CookiesForUser(ctx context.Context, userID int64) ([]*domain.Cookie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*domain.Cookie
	for _, acc := range s.accountsByUserLocked(userID) {
		all = append(all, s.cookiesByAccountLocked(acc.ID)...)
	}
	return all, nil
}

func (s *Store) UpdateCookie(ctx context.Context, c *domain.Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.cookies[c.ID]
	if !ok {
		return repository.ErrCookieNotFound
	}

	updated := *c
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.cookies[c.ID] = &updated
	return nil
}

func (s *Store) DeleteCookie(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cookies[id]; !ok {
		return repository.ErrCookieNotFound
	}
	delete(s.cookies, id)
	return nil
}

// --- Activity logs ---

func (s *Store) CreateActivityLog(ctx context.Context, l *domain.ActivityLog) (*domain.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *l
	stored.ID = s.nextLogID
	s.nextLogID++
	stored.CreatedAt = s.now()
	stored.UpdatedAt = stored.CreatedAt
	s.logs[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Store) GetActivityLog(ctx context.Context, id int64) (*domain.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.logs[id]
	if !ok {
		return nil, repository.ErrLogNotFound
	}
	out := *l
	return &out, nil
}

func (s *Store) ListActivityLogs(ctx context.Context, userID int64, limit int) ([]*domain.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]*domain.ActivityLog, 0)
	for _, l := range s.logs {
		if l.UserID == userID {
			out := *l
			logs = append(logs, &out)
		}
	}

	// Sort by creation time descending. Starting from the id-ascending
	// snapshot and using a stable sort keeps insertion order for equal
	// timestamps. Updates restamp UpdatedAt only, so they never reorder rows.
	sort.Slice(logs, func(i, j int) bool { return logs[i].ID < logs[j].ID })
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].CreatedAt.After(logs[j].CreatedAt) })

	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *Store) UpdateActivityLogStatus(ctx context.Context, id int64, status domain.ActivityStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.logs[id]
	if !ok {
		return repository.ErrLogNotFound
	}

	updated := *l
	updated.Status = status
	updated.UpdatedAt = s.now()
	s.logs[id] = &updated
	return nil
}

func (s *Store) DeleteActivityLog(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[id]; !ok {
		return repository.ErrLogNotFound
	}
	delete(s.logs, id)
	return nil
}
