package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"basegraph.app/huddle/common/id"
	"basegraph.app/huddle/common/logger"
	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/store"
)

type RosterService interface {
	Add(ctx context.Context, fields model.ParticipantFields) (*model.Participant, error)
	Update(ctx context.Context, participantID int64, fields model.ParticipantFields) (*model.Participant, error)
	Remove(ctx context.Context, participantID int64) error
	Find(ctx context.Context, participantID int64) (*model.Participant, error)
	List(ctx context.Context) ([]model.Participant, error)
}

type rosterService struct {
	roster store.RosterStore
}

func NewRosterService(roster store.RosterStore) RosterService {
	return &rosterService{roster: roster}
}

func (s *rosterService) Add(ctx context.Context, fields model.ParticipantFields) (*model.Participant, error) {
	p := fields.WithID(id.New())
	if err := s.roster.Add(ctx, p); err != nil {
		return nil, fmt.Errorf("adding participant: %w", err)
	}

	slog.InfoContext(withParticipant(ctx, p.ID), "participant added", "name", p.Name)
	return &p, nil
}

func (s *rosterService) Update(ctx context.Context, participantID int64, fields model.ParticipantFields) (*model.Participant, error) {
	ctx = withParticipant(ctx, participantID)

	p := fields.WithID(participantID)
	if err := s.roster.Update(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "update for participant that no longer exists")
		}
		return nil, fmt.Errorf("updating participant: %w", err)
	}

	slog.InfoContext(ctx, "participant updated", "name", p.Name)
	return &p, nil
}

func (s *rosterService) Remove(ctx context.Context, participantID int64) error {
	ctx = withParticipant(ctx, participantID)

	if err := s.roster.Remove(ctx, participantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "delete for participant that no longer exists")
		}
		return fmt.Errorf("removing participant: %w", err)
	}

	slog.InfoContext(ctx, "participant removed")
	return nil
}

func (s *rosterService) Find(ctx context.Context, participantID int64) (*model.Participant, error) {
	p, err := s.roster.Find(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("finding participant: %w", err)
	}
	return p, nil
}

func (s *rosterService) List(ctx context.Context) ([]model.Participant, error) {
	roster, err := s.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	return roster, nil
}

func withParticipant(ctx context.Context, participantID int64) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{
		ParticipantID: logger.Ptr(participantID),
		Component:     "huddle.service.roster",
	})
}
