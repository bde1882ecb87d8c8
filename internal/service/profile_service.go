package service

import (
	"context"
	"errors"

	"soccer-coach/internal/domain"
	"soccer-coach/internal/repository"
)

// ProfileService manages the one-to-one fitness profile of a user.
type ProfileService interface {
	// Upsert creates the profile on first write and otherwise replaces
	// every field with the given values. Omitted (nil) fields erase
	// previously stored values; this is a full replace, not a patch.
	Upsert(ctx context.Context, username string, fields domain.Profile) (*domain.Profile, error)
	// Get returns the user's profile, or nil when none has ever been
	// written. A missing profile is not an error.
	Get(ctx context.Context, username string) (*domain.Profile, error)
}

type profileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository) ProfileService {
	return &profileService{
		users:    users,
		profiles: profiles,
	}
}

func (s *profileService) Upsert(ctx context.Context, username string, fields domain.Profile) (*domain.Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := fields
	profile.ID = 0
	profile.UserID = user.ID
	if err := s.profiles.Upsert(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *profileService) Get(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}
