package domain

import "time"

// User is an operator of the automation panel.
//
// Usernames are unique case-insensitively. The password field holds the
// scrypt hash, never the plaintext.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
