package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/store"
	"basegraph.app/huddle/internal/view"
)

// HomeService renders the App Home tab and opens modals.
type HomeService interface {
	// Publish renders the current roster to userID's home tab.
	Publish(ctx context.Context, userID string) error
	// PublishAfter runs mutate and publishes the result as one step, so no
	// other mutation can land between the change and its render. A stale
	// participant id still re-publishes; its store.ErrNotFound is returned.
	PublishAfter(ctx context.Context, userID string, mutate func(context.Context) error) error
	OpenParticipantModal(ctx context.Context, triggerID string, p *model.Participant) error
	OpenDiscussionModal(ctx context.Context, triggerID string) error
}

type homeService struct {
	slack  SlackAPI
	roster RosterService

	renderMu sync.Mutex
}

func NewHomeService(slack SlackAPI, roster RosterService) HomeService {
	return &homeService{
		slack:  slack,
		roster: roster,
	}
}

func (s *homeService) Publish(ctx context.Context, userID string) error {
	return s.PublishAfter(ctx, userID, nil)
}

func (s *homeService) PublishAfter(ctx context.Context, userID string, mutate func(context.Context) error) error {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	var mutateErr error
	if mutate != nil {
		mutateErr = mutate(ctx)
		if mutateErr != nil && !errors.Is(mutateErr, store.ErrNotFound) {
			return mutateErr
		}
	}

	roster, err := s.roster.List(ctx)
	if err != nil {
		return err
	}

	if _, err := s.slack.PublishViewContext(ctx, userID, view.HomeView(roster), ""); err != nil {
		return errors.Join(mutateErr, fmt.Errorf("publishing home view: %w", err))
	}

	slog.DebugContext(ctx, "home view published", "participants", len(roster))
	return mutateErr
}

func (s *homeService) OpenParticipantModal(ctx context.Context, triggerID string, p *model.Participant) error {
	if _, err := s.slack.OpenViewContext(ctx, triggerID, view.ParticipantModal(p)); err != nil {
		return fmt.Errorf("opening participant modal: %w", err)
	}
	return nil
}

func (s *homeService) OpenDiscussionModal(ctx context.Context, triggerID string) error {
	if _, err := s.slack.OpenViewContext(ctx, triggerID, view.DiscussionModal()); err != nil {
		return fmt.Errorf("opening discussion modal: %w", err)
	}
	return nil
}
