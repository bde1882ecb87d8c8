package domain

import "time"

// Chat message roles. Insertion order is conversational order.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a user's conversation with the coach.
type ChatMessage struct {
	ID        int64
	UserID    int64
	Role      string
	Content   string
	CreatedAt time.Time
}
