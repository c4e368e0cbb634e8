package store

import (
	"context"
	"errors"

	"basegraph.app/huddle/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// RosterStore defines the contract for participant roster access.
// Implementations keep insertion order.
type RosterStore interface {
	Add(ctx context.Context, p model.Participant) error
	Update(ctx context.Context, p model.Participant) error // replaces by ID, ErrNotFound if absent
	Remove(ctx context.Context, id int64) error            // removes every match, ErrNotFound if none
	Find(ctx context.Context, id int64) (*model.Participant, error)
	List(ctx context.Context) ([]model.Participant, error)
}
