package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"soccer-coach/internal/domain"
)

// Completer produces a single assistant reply for a conversation. The
// call is synchronous and is not retried.
type Completer interface {
	Complete(ctx context.Context, system string, turns []domain.ChatMessage) (string, error)
}

// OpenAIClient talks to an OpenAI compatible chat completion API.
type OpenAIClient struct {
	model llms.Model
}

func NewOpenAIClient(token, model, baseURL string) (*OpenAIClient, error) {
	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &OpenAIClient{model: client}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, system string, turns []domain.ChatMessage) (string, error) {
	messages := make([]llms.MessageContent, 0, len(turns)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	for _, turn := range turns {
		role := llms.ChatMessageTypeHuman
		if turn.Role == domain.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}

	resp, err := c.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ Completer = (*OpenAIClient)(nil)
