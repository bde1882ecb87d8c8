package service

import (
	"context"
	"path/filepath"
	"testing"

	"soccer-coach/internal/repository"
	"soccer-coach/internal/repository/sqlite"
)

func newTestRepos(t *testing.T) (repository.UserRepository, repository.ProfileRepository, repository.ChatRepository) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	profiles := sqlite.NewProfileRepository(db)
	chats := sqlite.NewChatRepository(db)
	for _, init := range []func(context.Context) error{users.Init, profiles.Init, chats.Init} {
		if err := init(ctx); err != nil {
			t.Fatalf("init repository: %v", err)
		}
	}
	return users, profiles, chats
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }
