package domain

import "time"

// User represents a registered account. The username is the identity
// anchor for profiles, chat history and session tokens.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
