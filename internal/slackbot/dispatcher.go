// Package slackbot routes decoded Slack payloads to the services.
//
// Handlers return quickly: anything that calls Slack or the text generator
// goes through the Runner so transports can acknowledge within Slack's
// three second window. Only modal validation runs inline, because its
// result is the acknowledgement.
package slackbot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"basegraph.app/huddle/common/logger"
	"basegraph.app/huddle/internal/form"
	"basegraph.app/huddle/internal/mapper"
	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/service"
	"basegraph.app/huddle/internal/store"
)

// CommandHuddle opens the discussion modal.
const CommandHuddle = "/huddle"

// Handler is what the HTTP and Socket Mode transports deliver payloads to.
type Handler interface {
	HandleEvent(ctx context.Context, event slackevents.EventsAPIEvent)
	HandleInteraction(ctx context.Context, cb *slack.InteractionCallback) *slack.ViewSubmissionResponse
	HandleCommand(ctx context.Context, cmd slack.SlashCommand)
}

var _ Handler = (*Dispatcher)(nil)

type Dispatcher struct {
	roster   service.RosterService
	home     service.HomeService
	poster   service.ChannelPoster
	notifier service.Notifier
	mapper   *mapper.InteractionMapper
	runner   Runner
}

func NewDispatcher(services *service.Services, runner Runner) *Dispatcher {
	return &Dispatcher{
		roster:   services.Roster(),
		home:     services.Home(),
		poster:   services.Poster(),
		notifier: services.Notifier(),
		mapper:   mapper.NewInteractionMapper(),
		runner:   runner,
	}
}

// HandleEvent handles an Events API callback. URL verification is answered by
// the transport and never reaches here.
func (d *Dispatcher) HandleEvent(ctx context.Context, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		slog.DebugContext(ctx, "ignoring events api envelope", "type", event.Type)
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TeamID:    logger.StringPtrIf(event.TeamID),
		Component: "huddle.slackbot.events",
	})

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.AppHomeOpenedEvent:
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.StringPtrIf(ev.User)})
		d.runner.Go(ctx, "publish_home", func(ctx context.Context) {
			if err := d.home.Publish(ctx, ev.User); err != nil {
				slog.ErrorContext(ctx, "failed to publish home view", "error", err)
			}
		})

	case *slackevents.AppMentionEvent:
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			UserID:    logger.StringPtrIf(ev.User),
			ChannelID: logger.StringPtrIf(ev.Channel),
		})
		d.runner.Go(ctx, "greet", func(ctx context.Context) {
			if err := d.notifier.Greet(ctx, ev.Channel, ev.User); err != nil {
				slog.ErrorContext(ctx, "failed to answer mention", "error", err)
			}
		})

	default:
		slog.DebugContext(ctx, "ignoring event", "event_type", event.InnerEvent.Type)
	}
}

// HandleInteraction handles a block action or view submission. A non-nil
// response must be returned to Slack as the acknowledgement body.
func (d *Dispatcher) HandleInteraction(ctx context.Context, cb *slack.InteractionCallback) *slack.ViewSubmissionResponse {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TeamID:    logger.StringPtrIf(cb.Team.ID),
		UserID:    logger.StringPtrIf(cb.User.ID),
		Component: "huddle.slackbot.interactions",
	})

	in, err := d.mapper.Map(cb)
	if err != nil {
		slog.WarnContext(ctx, "unhandled interaction", "error", err)
		return nil
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Interaction: logger.Ptr(string(in.Kind))})
	if in.ParticipantID != 0 {
		ctx = logger.WithLogFields(ctx, logger.LogFields{ParticipantID: logger.Ptr(in.ParticipantID)})
	}
	userID := cb.User.ID

	switch in.Kind {
	case mapper.KindAddParticipant:
		d.runner.Go(ctx, "open_add_modal", func(ctx context.Context) {
			if err := d.home.OpenParticipantModal(ctx, cb.TriggerID, nil); err != nil {
				d.report(ctx, "", userID, err)
			}
		})

	case mapper.KindEditParticipant:
		d.runner.Go(ctx, "open_edit_modal", func(ctx context.Context) {
			d.openEditModal(ctx, cb.TriggerID, userID, in.ParticipantID)
		})

	case mapper.KindDeleteParticipant:
		d.runner.Go(ctx, "delete_participant", func(ctx context.Context) {
			err := d.home.PublishAfter(ctx, userID, func(ctx context.Context) error {
				return d.roster.Remove(ctx, in.ParticipantID)
			})
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				d.report(ctx, "", userID, err)
			}
		})

	case mapper.KindGenerate:
		discussion, err := form.ParseDiscussion(cb.View.State)
		if err != nil {
			d.runner.Go(ctx, "report_form_error", func(ctx context.Context) {
				d.report(ctx, "", userID, err)
			})
			return nil
		}
		d.generate(ctx, discussion.Request(userID))

	case mapper.KindSubmitAdd:
		fields, err := form.ParseParticipant(cb.View.State)
		if err != nil {
			return fieldErrors(ctx, err)
		}
		d.runner.Go(ctx, "add_participant", func(ctx context.Context) {
			err := d.home.PublishAfter(ctx, userID, func(ctx context.Context) error {
				_, err := d.roster.Add(ctx, fields)
				return err
			})
			if err != nil {
				d.report(ctx, "", userID, err)
			}
		})

	case mapper.KindSubmitEdit:
		fields, err := form.ParseParticipant(cb.View.State)
		if err != nil {
			return fieldErrors(ctx, err)
		}
		d.runner.Go(ctx, "update_participant", func(ctx context.Context) {
			err := d.home.PublishAfter(ctx, userID, func(ctx context.Context) error {
				_, err := d.roster.Update(ctx, in.ParticipantID, fields)
				return err
			})
			if err != nil {
				d.report(ctx, "", userID, err)
			}
		})

	case mapper.KindSubmitGenerate:
		discussion, err := form.ParseDiscussion(cb.View.State)
		if err != nil {
			return fieldErrors(ctx, err)
		}
		d.generate(ctx, discussion.Request(userID))
	}

	return nil
}

// HandleCommand handles a slash command.
func (d *Dispatcher) HandleCommand(ctx context.Context, cmd slack.SlashCommand) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TeamID:    logger.StringPtrIf(cmd.TeamID),
		UserID:    logger.StringPtrIf(cmd.UserID),
		ChannelID: logger.StringPtrIf(cmd.ChannelID),
		Component: "huddle.slackbot.commands",
	})

	if cmd.Command != CommandHuddle {
		slog.WarnContext(ctx, "unknown slash command", "command", cmd.Command)
		return
	}

	d.runner.Go(ctx, "open_discussion_modal", func(ctx context.Context) {
		if err := d.home.OpenDiscussionModal(ctx, cmd.TriggerID); err != nil {
			d.report(ctx, cmd.ChannelID, cmd.UserID, err)
		}
	})
}

func (d *Dispatcher) openEditModal(ctx context.Context, triggerID, userID string, participantID int64) {
	p, err := d.roster.Find(ctx, participantID)
	if errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "edit requested for participant that no longer exists")
		if err := d.home.Publish(ctx, userID); err != nil {
			slog.ErrorContext(ctx, "failed to refresh home view", "error", err)
		}
		d.notifier.Notify(ctx, "", userID, d.notifier.Describe(store.ErrNotFound))
		return
	}
	if err != nil {
		d.report(ctx, "", userID, err)
		return
	}

	if err := d.home.OpenParticipantModal(ctx, triggerID, p); err != nil {
		d.report(ctx, "", userID, err)
	}
}

func (d *Dispatcher) generate(ctx context.Context, req model.ConversationRequest) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{ChannelID: logger.StringPtrIf(req.ChannelID)})
	slog.InfoContext(ctx, "conversation requested", "message_count", req.MessageCount)

	d.runner.Go(ctx, "generate_conversation", func(ctx context.Context) {
		if _, err := d.poster.Post(ctx, req); err != nil {
			d.report(ctx, req.ChannelID, req.RequestedBy, err)
		}
	})
}

// report logs err and tells the user what went wrong.
func (d *Dispatcher) report(ctx context.Context, channelID, userID string, err error) {
	if isUserError(err) {
		slog.WarnContext(ctx, "interaction rejected", "error", err)
	} else {
		slog.ErrorContext(ctx, "interaction failed", "error", err)
	}
	d.notifier.Notify(ctx, channelID, userID, d.notifier.Describe(err))
}

func isUserError(err error) bool {
	return errors.Is(err, service.ErrNoParticipants) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, form.ErrMissingField) ||
		errors.Is(err, form.ErrInvalidField)
}

func fieldErrors(ctx context.Context, err error) *slack.ViewSubmissionResponse {
	slog.InfoContext(ctx, "modal submission rejected", "error", err)
	return slack.NewErrorsViewSubmissionResponse(form.FieldErrors(err))
}
