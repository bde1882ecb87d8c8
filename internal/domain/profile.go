package domain

import "time"

// Profile holds the optional fitness attributes attached to one user.
// Every attribute is nullable; a nil field is stored as NULL. A profile
// write replaces all fields, so nil also means "erase".
type Profile struct {
	ID         int64
	UserID     int64
	Name       *string
	Age        *int
	Weight     *float64
	Height     *float64
	Strengths  *string
	Weaknesses *string
	Expertise  *string
	Time       *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
