package repository

// Store is the single source of truth for all four entity kinds. Implementing
// it as one object (rather than four detached repositories) is what lets
// DeleteUser and DeleteAccount cascade across tables atomically.
type Store interface {
	UserRepository
	AccountRepository
	CookieRepository
	ActivityRepository

	Close() error
}
