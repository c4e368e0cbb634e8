package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"basegraph.app/huddle/common/llm"
	"basegraph.app/huddle/common/logger"
	"basegraph.app/huddle/internal/model"
)

var (
	ErrNoParticipants    = errors.New("no participants in the roster")
	ErrEmptyConversation = errors.New("generated conversation has no lines")
)

type DiscussionConfig struct {
	TokensPerMessage int
	Temperature      float64
}

type DiscussionService interface {
	Generate(ctx context.Context, req model.ConversationRequest, roster []model.Participant) (*model.GeneratedConversation, error)
}

type discussionService struct {
	completer llm.Completer
	cfg       DiscussionConfig
}

func NewDiscussionService(completer llm.Completer, cfg DiscussionConfig) DiscussionService {
	return &discussionService{
		completer: completer,
		cfg:       cfg,
	}
}

func (s *discussionService) Generate(ctx context.Context, req model.ConversationRequest, roster []model.Participant) (*model.GeneratedConversation, error) {
	if len(roster) == 0 {
		return nil, ErrNoParticipants
	}

	sc := logger.StartSpan(ctx, "discussion.generate",
		trace.WithAttributes(
			attribute.Int("huddle.message_count", req.MessageCount),
			attribute.Int("huddle.participants", len(roster)),
			attribute.String("llm.model", s.completer.Model()),
		),
	)
	defer sc.End()
	ctx = sc.Context()

	prompt := BuildPrompt(req.Topic, req.Company, req.MessageCount, roster)
	slog.DebugContext(ctx, "requesting conversation", "prompt", logger.Truncate(prompt, 300))

	resp, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   s.cfg.TokensPerMessage * req.MessageCount,
		Temperature: llm.Temp(s.cfg.Temperature),
	})
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("generating conversation: %w", err)
	}

	lines := ParseLines(resp.Text, req.MessageCount)
	slog.InfoContext(ctx, "conversation generated",
		"lines", len(lines),
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens)

	return &model.GeneratedConversation{Lines: lines}, nil
}

// BuildPrompt renders the single instruction sent to the text generator.
func BuildPrompt(topic, company string, messageCount int, roster []model.Participant) string {
	people := make([]string, len(roster))
	for i, p := range roster {
		people[i] = fmt.Sprintf("%s (%s at %s)", p.Name, p.Position, company)
	}
	return fmt.Sprintf("Generate a conversation between %s about the topic \"%s\". The conversation should have %d messages.",
		strings.Join(people, ", "), topic, messageCount)
}

var speakerLabel = regexp.MustCompile(`^.*?:\s*`)

// ParseLines splits raw generator output into at most limit message texts.
// Blank lines are dropped and everything up to the first colon is treated as
// a speaker label and removed.
func ParseLines(raw string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	lines := make([]string, 0, limit)
	for _, line := range strings.Split(raw, "\n") {
		if len(lines) == limit {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, speakerLabel.ReplaceAllString(line, ""))
	}
	return lines
}
