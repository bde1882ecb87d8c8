package service

import (
	"context"
	"errors"
	"testing"

	"soccer-coach/internal/domain"
)

func TestProfileRoundTrip(t *testing.T) {
	users, profiles, _ := newTestRepos(t)
	userSvc := NewUserService(users)
	svc := NewProfileService(users, profiles)
	ctx := context.Background()

	if _, err := userSvc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// read before any write is empty, not an error
	got, err := svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no profile before first write, got %+v", got)
	}

	written, err := svc.Upsert(ctx, "alice", domain.Profile{
		Name:   strPtr("Alice"),
		Age:    intPtr(20),
		Weight: floatPtr(62.5),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if written.Name == nil || *written.Name != "Alice" {
		t.Errorf("expected echoed name Alice, got %v", written.Name)
	}

	got, err = svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get after write: %v", err)
	}
	if got == nil || got.Age == nil || *got.Age != 20 {
		t.Fatalf("expected age 20, got %+v", got)
	}

	// overwrite with age omitted clears it (full replace semantics)
	if _, err := svc.Upsert(ctx, "alice", domain.Profile{Name: strPtr("Alice")}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = svc.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if got.Age != nil {
		t.Errorf("expected age cleared, got %d", *got.Age)
	}
	if got.Weight != nil {
		t.Errorf("expected weight cleared, got %g", *got.Weight)
	}
}

func TestProfileUpsertUnknownUser(t *testing.T) {
	users, profiles, _ := newTestRepos(t)
	svc := NewProfileService(users, profiles)

	_, err := svc.Upsert(context.Background(), "ghost", domain.Profile{Name: strPtr("x")})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileGetUnknownUserIsEmpty(t *testing.T) {
	users, profiles, _ := newTestRepos(t)
	svc := NewProfileService(users, profiles)

	got, err := svc.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected empty result for unknown user, got %+v", got)
	}
}
