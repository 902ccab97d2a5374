package domain

import "time"

// Account is one Instagram login owned by a User. The email/password pair is
// the platform login used to fetch session cookies; the persisted credentials
// themselves live in Cookie rows bound to this account.
type Account struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
