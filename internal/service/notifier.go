package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"basegraph.app/huddle/internal/form"
	"basegraph.app/huddle/internal/store"
	"basegraph.app/huddle/internal/view"
)

const (
	msgNoParticipants    = "Add at least one conversation user before generating a discussion."
	msgStaleParticipant  = "That user no longer exists. The list has been refreshed."
	msgEmptyConversation = "The text generator returned no messages. Try again."
	msgMissingField      = "Please fill in every field before submitting."
	msgFallback          = "Something went wrong while talking to Slack or the text generator."
)

// Notifier tells a user that something they triggered failed.
type Notifier interface {
	// Notify posts an ephemeral message in channelID, or a direct message
	// when channelID is empty. Delivery failures are logged, not returned.
	Notify(ctx context.Context, channelID, userID, text string)
	// Describe maps an error to the text shown to the user.
	Describe(err error) string
	// Greet answers an app mention in channelID.
	Greet(ctx context.Context, channelID, userID string) error
}

type notifier struct {
	slack SlackAPI
}

func NewNotifier(slack SlackAPI) Notifier {
	return &notifier{slack: slack}
}

func (n *notifier) Notify(ctx context.Context, channelID, userID, text string) {
	if userID == "" {
		slog.WarnContext(ctx, "no user to notify", "text", text)
		return
	}

	var err error
	if channelID != "" {
		_, err = n.slack.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	} else {
		_, _, err = n.slack.PostMessageContext(ctx, userID, slack.MsgOptionText(text, false))
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to notify user", "error", err)
	}
}

func (n *notifier) Greet(ctx context.Context, channelID, userID string) error {
	if _, _, err := n.slack.PostMessageContext(ctx, channelID, slack.MsgOptionText(view.Greeting(userID), false)); err != nil {
		return fmt.Errorf("posting greeting: %w", err)
	}
	return nil
}

func (n *notifier) Describe(err error) string {
	var invalid *form.InvalidFieldError

	switch {
	case errors.Is(err, ErrNoParticipants):
		return msgNoParticipants
	case errors.Is(err, store.ErrNotFound):
		return msgStaleParticipant
	case errors.Is(err, ErrEmptyConversation):
		return msgEmptyConversation
	case errors.As(err, &invalid):
		return invalid.Reason
	case errors.Is(err, form.ErrMissingField):
		return msgMissingField
	default:
		return msgFallback
	}
}
