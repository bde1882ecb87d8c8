package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"soccer-coach/internal/domain"
	"soccer-coach/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRepos(t *testing.T) (repository.UserRepository, repository.ProfileRepository, repository.ChatRepository) {
	t.Helper()
	db := openTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	chats := NewChatRepository(db)
	for _, init := range []func(context.Context) error{users.Init, profiles.Init, chats.Init} {
		if err := init(ctx); err != nil {
			t.Fatalf("init repository: %v", err)
		}
	}
	return users, profiles, chats
}

func createTestUser(t *testing.T, users repository.UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: "x"}
	if _, err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	users, _, _ := newTestRepos(t)
	ctx := context.Background()

	createTestUser(t, users, "alice")

	_, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "y"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	users, _, _ := newTestRepos(t)

	_, err := users.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestProfileRepositoryUpsertReplacesAllFields(t *testing.T) {
	users, profiles, _ := newTestRepos(t)
	ctx := context.Background()
	user := createTestUser(t, users, "alice")

	first := &domain.Profile{
		UserID:    user.ID,
		Name:      strPtr("Alice"),
		Age:       intPtr(20),
		Strengths: strPtr("stamina"),
	}
	if err := profiles.Upsert(ctx, first); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	got, err := profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Name == nil || *got.Name != "Alice" {
		t.Errorf("expected name Alice, got %v", got.Name)
	}
	if got.Age == nil || *got.Age != 20 {
		t.Errorf("expected age 20, got %v", got.Age)
	}

	// second write omits previously set fields, which must erase them
	second := &domain.Profile{
		UserID: user.ID,
		Name:   strPtr("Alice B"),
	}
	if err := profiles.Upsert(ctx, second); err != nil {
		t.Fatalf("overwrite profile: %v", err)
	}

	got, err = profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile after overwrite: %v", err)
	}
	if got.Name == nil || *got.Name != "Alice B" {
		t.Errorf("expected name Alice B, got %v", got.Name)
	}
	if got.Age != nil {
		t.Errorf("expected age erased, got %d", *got.Age)
	}
	if got.Strengths != nil {
		t.Errorf("expected strengths erased, got %q", *got.Strengths)
	}
}

func TestProfileRepositoryMissingProfile(t *testing.T) {
	users, profiles, _ := newTestRepos(t)
	user := createTestUser(t, users, "alice")

	_, err := profiles.GetByUserID(context.Background(), user.ID)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestChatRepositoryOrderingAndClear(t *testing.T) {
	users, _, chats := newTestRepos(t)
	ctx := context.Background()
	user := createTestUser(t, users, "alice")

	contents := []string{"m1", "m2", "m3"}
	for i, content := range contents {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		if _, err := chats.Append(ctx, &domain.ChatMessage{UserID: user.ID, Role: role, Content: content}); err != nil {
			t.Fatalf("append %s: %v", content, err)
		}
	}

	messages, err := chats.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(messages))
	}
	for i, content := range contents {
		if messages[i].Content != content {
			t.Errorf("position %d: expected %q, got %q", i, content, messages[i].Content)
		}
	}

	if err := chats.DeleteByUser(ctx, user.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	messages, err = chats.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty history after clear, got %d messages", len(messages))
	}
}

func TestChatRepositoryIsolatedPerUser(t *testing.T) {
	users, _, chats := newTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	if _, err := chats.Append(ctx, &domain.ChatMessage{UserID: alice.ID, Role: domain.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	messages, err := chats.ListByUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected no messages for bob, got %d", len(messages))
	}
}
