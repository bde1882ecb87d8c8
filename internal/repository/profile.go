package repository

import (
	"context"

	"soccer-coach/internal/domain"
)

// ProfileRepository defines persistence operations for the one-to-one
// fitness profile of a user.
type ProfileRepository interface {
	Init(ctx context.Context) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// Upsert creates the profile on first write and otherwise replaces
	// every field with the given values, including nil ones.
	Upsert(ctx context.Context, profile *domain.Profile) error
}
