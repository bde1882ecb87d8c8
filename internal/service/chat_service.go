package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"soccer-coach/internal/domain"
	"soccer-coach/internal/repository"
	"soccer-coach/internal/storage"
)

// ErrStorageNotConfigured is returned by archive operations when no
// object storage bucket has been configured.
var ErrStorageNotConfigured = errors.New("storage service not configured")

// ChatService manages the append-only per-user chat log.
type ChatService interface {
	History(ctx context.Context, username string) ([]domain.ChatMessage, error)
	Clear(ctx context.Context, username string) error
	// Archive serializes the user's full history and uploads it to
	// object storage, returning the resulting location.
	Archive(ctx context.Context, username string) (string, error)
	ListArchives(ctx context.Context, username string) ([]storage.ObjectInfo, error)
}

// ArchiveConfig names the upload destination for chat archives.
type ArchiveConfig struct {
	Bucket    string
	KeyPrefix string
}

type chatService struct {
	users   repository.UserRepository
	chats   repository.ChatRepository
	storage storage.Service
	archive ArchiveConfig
}

func NewChatService(users repository.UserRepository, chats repository.ChatRepository, store storage.Service, archive ArchiveConfig) ChatService {
	return &chatService{
		users:   users,
		chats:   chats,
		storage: store,
		archive: archive,
	}
}

func (s *chatService) History(ctx context.Context, username string) ([]domain.ChatMessage, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.chats.ListByUser(ctx, user.ID)
}

func (s *chatService) Clear(ctx context.Context, username string) error {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	return s.chats.DeleteByUser(ctx, user.ID)
}

type archivedMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type archiveDocument struct {
	Username   string            `json:"username"`
	ArchivedAt time.Time         `json:"archived_at"`
	Messages   []archivedMessage `json:"messages"`
}

func (s *chatService) Archive(ctx context.Context, username string) (string, error) {
	if s.storage == nil || s.archive.Bucket == "" {
		return "", ErrStorageNotConfigured
	}

	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return "", err
	}
	messages, err := s.chats.ListByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}

	doc := archiveDocument{
		Username:   user.Username,
		ArchivedAt: time.Now().UTC(),
		Messages:   make([]archivedMessage, len(messages)),
	}
	for i, msg := range messages {
		doc.Messages[i] = archivedMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal archive: %w", err)
	}

	key := fmt.Sprintf("%s/%s/history-%s.json", s.archive.KeyPrefix, user.Username, uuid.NewString())
	return s.storage.UploadObject(ctx, key, body, storage.UploadOptions{
		Bucket:      s.archive.Bucket,
		ContentType: "application/json",
	})
}

func (s *chatService) ListArchives(ctx context.Context, username string) ([]storage.ObjectInfo, error) {
	if s.storage == nil || s.archive.Bucket == "" {
		return nil, ErrStorageNotConfigured
	}

	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf("%s/%s/", s.archive.KeyPrefix, user.Username)
	return s.storage.ListObjects(ctx, s.archive.Bucket, prefix)
}

func (s *chatService) resolveUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
