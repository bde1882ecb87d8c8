package repository

import (
	"context"

	"soccer-coach/internal/domain"
)

// ChatRepository defines persistence operations for per-user chat history.
type ChatRepository interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, msg *domain.ChatMessage) (int64, error)
	// ListByUser returns all messages of a user in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID int64) error
}
