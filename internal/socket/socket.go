// Package socket delivers Slack payloads over Socket Mode instead of public
// HTTP endpoints.
package socket

import (
	"context"
	"log/slog"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"basegraph.app/huddle/common/logger"
	"basegraph.app/huddle/internal/slackbot"
)

// Acker acknowledges a Socket Mode envelope, optionally with a response body.
type Acker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

type Runner struct {
	client  *socketmode.Client
	handler slackbot.Handler
}

// New builds a Socket Mode client on api, which must carry an app-level token.
func New(api *slack.Client, handler slackbot.Handler, debug bool) *Runner {
	return &Runner{
		client:  socketmode.New(api, socketmode.OptionDebug(debug)),
		handler: handler,
	}
}

// Run connects and dispatches envelopes until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-r.client.Events:
				if !ok {
					return
				}
				Handle(ctx, r.client, r.handler, evt)
			}
		}
	}()

	return r.client.RunContext(ctx)
}

// Handle acknowledges one envelope and hands its payload to handler. Envelopes
// are acked before the handler returns, except view submissions, whose
// response is the ack payload.
func Handle(ctx context.Context, acker Acker, handler slackbot.Handler, evt socketmode.Event) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "huddle.socket"})

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		slog.InfoContext(ctx, "connecting to slack socket mode")

	case socketmode.EventTypeConnected:
		slog.InfoContext(ctx, "connected to slack socket mode")

	case socketmode.EventTypeConnectionError:
		slog.WarnContext(ctx, "slack socket mode connection error", "error", evt.Data)

	case socketmode.EventTypeEventsAPI:
		event, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok || evt.Request == nil {
			return
		}
		acker.Ack(*evt.Request)
		handler.HandleEvent(ctx, event)

	case socketmode.EventTypeInteractive:
		cb, ok := evt.Data.(slack.InteractionCallback)
		if !ok || evt.Request == nil {
			return
		}
		if resp := handler.HandleInteraction(ctx, &cb); resp != nil {
			acker.Ack(*evt.Request, resp)
			return
		}
		acker.Ack(*evt.Request)

	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok || evt.Request == nil {
			return
		}
		acker.Ack(*evt.Request)
		handler.HandleCommand(ctx, cmd)

	default:
		slog.DebugContext(ctx, "ignoring socket mode event", "type", evt.Type)
	}
}
