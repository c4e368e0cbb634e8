// Package mapper decodes Slack action and callback ids into typed interactions.
package mapper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"basegraph.app/huddle/common/id"
	"basegraph.app/huddle/internal/view"
)

var ErrUnknownInteraction = errors.New("unknown interaction")

type InteractionKind string

const (
	KindAddParticipant    InteractionKind = "add_participant"
	KindEditParticipant   InteractionKind = "edit_participant"
	KindDeleteParticipant InteractionKind = "delete_participant"
	KindGenerate          InteractionKind = "generate"
	KindSubmitAdd         InteractionKind = "submit_add"
	KindSubmitEdit        InteractionKind = "submit_edit"
	KindSubmitGenerate    InteractionKind = "submit_generate"
)

// Interaction is a decoded button press or modal submission. ParticipantID is
// set for the edit, delete and submit-edit kinds only.
type Interaction struct {
	Kind          InteractionKind
	ParticipantID int64
}

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

// Map decodes a block action or view submission. Block action payloads carry
// a single action for button and select elements; the first one is used.
func (m *InteractionMapper) Map(cb *slack.InteractionCallback) (Interaction, error) {
	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		if len(cb.ActionCallback.BlockActions) == 0 {
			return Interaction{}, fmt.Errorf("%w: block_actions without actions", ErrUnknownInteraction)
		}
		return m.MapAction(cb.ActionCallback.BlockActions[0].ActionID)
	case slack.InteractionTypeViewSubmission:
		return m.MapSubmission(cb.View.CallbackID)
	default:
		return Interaction{}, fmt.Errorf("%w: type=%q", ErrUnknownInteraction, cb.Type)
	}
}

// MapAction decodes a block action id.
func (m *InteractionMapper) MapAction(actionID string) (Interaction, error) {
	switch actionID {
	case view.ActionAddParticipant:
		return Interaction{Kind: KindAddParticipant}, nil
	case view.ActionGenerate:
		return Interaction{Kind: KindGenerate}, nil
	}

	if rest, ok := strings.CutPrefix(actionID, view.ActionEditParticipant); ok {
		return withID(KindEditParticipant, rest, actionID)
	}
	if rest, ok := strings.CutPrefix(actionID, view.ActionDeleteParticipant); ok {
		return withID(KindDeleteParticipant, rest, actionID)
	}

	return Interaction{}, fmt.Errorf("%w: action_id=%q", ErrUnknownInteraction, actionID)
}

// MapSubmission decodes a modal callback id.
func (m *InteractionMapper) MapSubmission(callbackID string) (Interaction, error) {
	switch callbackID {
	case view.CallbackAddParticipant:
		return Interaction{Kind: KindSubmitAdd}, nil
	case view.CallbackGenerateDiscussion:
		return Interaction{Kind: KindSubmitGenerate}, nil
	}

	if rest, ok := strings.CutPrefix(callbackID, view.CallbackEditParticipant); ok {
		return withID(KindSubmitEdit, rest, callbackID)
	}

	return Interaction{}, fmt.Errorf("%w: callback_id=%q", ErrUnknownInteraction, callbackID)
}

func withID(kind InteractionKind, suffix, raw string) (Interaction, error) {
	pid, err := id.Parse(suffix)
	if err != nil {
		return Interaction{}, fmt.Errorf("%w: %q has no participant id", ErrUnknownInteraction, raw)
	}
	return Interaction{Kind: kind, ParticipantID: pid}, nil
}
