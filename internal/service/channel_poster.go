package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"basegraph.app/huddle/common/logger"
	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/view"
)

// ChannelPoster runs a generation and posts the result as a thread of
// impersonated messages. Every step waits for the previous one.
type ChannelPoster interface {
	Post(ctx context.Context, req model.ConversationRequest) (*model.PostedConversation, error)
}

type channelPoster struct {
	slack      SlackAPI
	roster     RosterService
	discussion DiscussionService
}

func NewChannelPoster(slack SlackAPI, roster RosterService, discussion DiscussionService) ChannelPoster {
	return &channelPoster{
		slack:      slack,
		roster:     roster,
		discussion: discussion,
	}
}

func (p *channelPoster) Post(ctx context.Context, req model.ConversationRequest) (*model.PostedConversation, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ChannelID: logger.StringPtrIf(req.ChannelID),
		Component: "huddle.service.channel_poster",
	})

	roster, err := p.roster.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, ErrNoParticipants
	}

	_, placeholderTS, err := p.slack.PostMessageContext(ctx, req.ChannelID,
		slack.MsgOptionText(view.PlaceholderText, false))
	if err != nil {
		return nil, fmt.Errorf("posting placeholder: %w", err)
	}

	conversation, err := p.discussion.Generate(ctx, req, roster)
	if err != nil {
		p.abandonPlaceholder(ctx, req.ChannelID, placeholderTS)
		return nil, err
	}
	if len(conversation.Lines) == 0 {
		p.abandonPlaceholder(ctx, req.ChannelID, placeholderTS)
		return nil, ErrEmptyConversation
	}

	if _, _, _, err := p.slack.UpdateMessageContext(ctx, req.ChannelID, placeholderTS,
		slack.MsgOptionText(strings.Join(conversation.Lines, "\n"), false)); err != nil {
		return nil, fmt.Errorf("updating placeholder: %w", err)
	}

	if _, _, err := p.slack.DeleteMessageContext(ctx, req.ChannelID, placeholderTS); err != nil {
		return nil, fmt.Errorf("deleting placeholder: %w", err)
	}

	posted := &model.PostedConversation{ChannelID: req.ChannelID}
	for i, line := range conversation.Lines {
		speaker := model.Speaker(roster, i)

		opts := speakerOptions(speaker, line)
		if i > 0 {
			opts = append(opts, slack.MsgOptionTS(posted.ParentTS))
		}

		_, ts, err := p.slack.PostMessageContext(ctx, req.ChannelID, opts...)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("posting parent message: %w", err)
			}
			return posted, fmt.Errorf("posting thread reply %d: %w", i, err)
		}

		msg := model.PostedMessage{TS: ts, Speaker: speaker, Text: line}
		if i == 0 {
			posted.ParentTS = ts
		} else {
			msg.ThreadTS = posted.ParentTS
		}
		posted.Messages = append(posted.Messages, msg)
	}

	slog.InfoContext(ctx, "conversation posted",
		"parent_ts", posted.ParentTS,
		"messages", len(posted.Messages))
	return posted, nil
}

// abandonPlaceholder replaces the placeholder with a failure note. Errors are
// logged only; the caller is already returning the generation failure.
func (p *channelPoster) abandonPlaceholder(ctx context.Context, channelID, ts string) {
	if _, _, _, err := p.slack.UpdateMessageContext(ctx, channelID, ts,
		slack.MsgOptionText(view.FailedText, false)); err != nil {
		slog.WarnContext(ctx, "failed to replace placeholder", "error", err, "ts", ts)
	}
}

func speakerOptions(speaker model.Participant, text string) []slack.MsgOption {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
		slack.MsgOptionUsername(speaker.Name),
	}
	if speaker.PictureURL != "" {
		opts = append(opts, slack.MsgOptionIconURL(speaker.PictureURL))
	}
	return opts
}
