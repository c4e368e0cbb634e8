package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"basegraph.app/huddle/internal/model"
)

// memoryRosterStore keeps the roster in process memory. It is reset on restart.
type memoryRosterStore struct {
	mu      sync.RWMutex
	entries []model.Participant
}

func NewMemoryRosterStore() RosterStore {
	return &memoryRosterStore{}
}

func (s *memoryRosterStore) Add(_ context.Context, p model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.ID) >= 0 {
		return fmt.Errorf("participant %d already exists", p.ID)
	}
	s.entries = append(s.entries, p)
	return nil
}

func (s *memoryRosterStore) Update(_ context.Context, p model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.entries[i] = p
	return nil
}

func (s *memoryRosterStore) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(p model.Participant) bool {
		return p.ID == id
	})
	if len(s.entries) == before {
		return ErrNotFound
	}
	return nil
}

func (s *memoryRosterStore) Find(_ context.Context, id int64) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := s.entries[i]
	return &p, nil
}

func (s *memoryRosterStore) List(_ context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.entries), nil
}

// indexOf must be called with mu held.
func (s *memoryRosterStore) indexOf(id int64) int {
	return slices.IndexFunc(s.entries, func(p model.Participant) bool {
		return p.ID == id
	})
}
