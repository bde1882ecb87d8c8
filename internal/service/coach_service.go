package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"soccer-coach/internal/domain"
	"soccer-coach/internal/llm"
	"soccer-coach/internal/repository"
)

// ErrCompletionFailed wraps any failure of the upstream completion call.
var ErrCompletionFailed = errors.New("completion failed")

const (
	coachPersona = "You are an AI Coach specializing in football, fitness, and health. " +
		"Please provide personalized advice along with a daily plan (based on the amount of " +
		"free time, with brief instructions on what to do every session)."

	noProfilePlaceholder = "No profile provided."
)

// CoachService answers free-text coaching queries. Each successful call
// appends the query and the reply to the user's chat log, in that order;
// a failed upstream call appends nothing.
type CoachService interface {
	Ask(ctx context.Context, username, query string) (string, error)
}

// CoachConfig tunes prompt assembly.
type CoachConfig struct {
	// ReferenceText is the static reference material loaded once at startup.
	ReferenceText string
	// HistoryWindow caps how many stored messages are replayed upstream.
	// The full history stays persisted; only the prompt is bounded.
	HistoryWindow int
}

type coachService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	chats     repository.ChatRepository
	completer llm.Completer
	cfg       CoachConfig
	logger    *logrus.Logger
}

func NewCoachService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	chats repository.ChatRepository,
	completer llm.Completer,
	cfg CoachConfig,
	logger *logrus.Logger,
) CoachService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 50
	}
	return &coachService{
		users:     users,
		profiles:  profiles,
		chats:     chats,
		completer: completer,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *coachService) Ask(ctx context.Context, username, query string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	profileSummary := noProfilePlaceholder
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if profile != nil {
		profileSummary = renderProfileSummary(profile)
	}

	history, err := s.chats.ListByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if len(history) > s.cfg.HistoryWindow {
		history = history[len(history)-s.cfg.HistoryWindow:]
	}

	turns := append(history, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: query,
	})

	system := fmt.Sprintf("%s\nProfile:\n%s\nLINKS:\n%s", coachPersona, profileSummary, s.cfg.ReferenceText)

	// The upstream call and the persistence of its result run to
	// completion even if the client disconnects mid-request.
	callCtx := context.WithoutCancel(ctx)

	answer, err := s.completer.Complete(callCtx, system, turns)
	if err != nil {
		s.logger.Warnf("coach completion for %s: %v", user.Username, err)
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	if _, err := s.chats.Append(callCtx, &domain.ChatMessage{
		UserID:  user.ID,
		Role:    domain.RoleUser,
		Content: query,
	}); err != nil {
		return "", err
	}
	if _, err := s.chats.Append(callCtx, &domain.ChatMessage{
		UserID:  user.ID,
		Role:    domain.RoleAssistant,
		Content: answer,
	}); err != nil {
		return "", err
	}

	return answer, nil
}

// renderProfileSummary turns populated profile fields into "Label: value"
// lines for the system instruction. Unset fields are skipped.
func renderProfileSummary(p *domain.Profile) string {
	var parts []string
	if p.Name != nil && *p.Name != "" {
		parts = append(parts, fmt.Sprintf("Name: %s", *p.Name))
	}
	if p.Age != nil {
		parts = append(parts, fmt.Sprintf("Age: %d", *p.Age))
	}
	if p.Weight != nil {
		parts = append(parts, fmt.Sprintf("Weight (kg): %g", *p.Weight))
	}
	if p.Height != nil {
		parts = append(parts, fmt.Sprintf("Height (cm): %g", *p.Height))
	}
	if p.Strengths != nil && *p.Strengths != "" {
		parts = append(parts, fmt.Sprintf("Strengths: %s", *p.Strengths))
	}
	if p.Weaknesses != nil && *p.Weaknesses != "" {
		parts = append(parts, fmt.Sprintf("Weaknesses: %s", *p.Weaknesses))
	}
	if p.Expertise != nil && *p.Expertise != "" {
		parts = append(parts, fmt.Sprintf("Expertise: %s", *p.Expertise))
	}
	if p.Time != nil {
		parts = append(parts, fmt.Sprintf("Free time per day (minutes): %d", *p.Time))
	}
	if len(parts) == 0 {
		return noProfilePlaceholder
	}
	return strings.Join(parts, "\n")
}
