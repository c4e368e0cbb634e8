// Package form reads submitted view state into typed values.
package form

import (
	"slices"
	"strconv"

	"github.com/slack-go/slack"

	"basegraph.app/huddle/internal/model"
	"basegraph.app/huddle/internal/view"
)

// Discussion is the generation form as submitted from the home tab or the
// discussion modal.
type Discussion struct {
	Topic        string
	Company      string
	MessageCount int
	ChannelID    string
}

// Request attaches the requesting user to the form values.
func (d Discussion) Request(userID string) model.ConversationRequest {
	return model.ConversationRequest{
		Topic:        d.Topic,
		Company:      d.Company,
		MessageCount: d.MessageCount,
		ChannelID:    d.ChannelID,
		RequestedBy:  userID,
	}
}

// ParseParticipant reads the participant modal. Text values are taken as-is;
// an empty string is a valid value.
func ParseParticipant(state *slack.ViewState) (model.ParticipantFields, error) {
	name, err := field(state, view.BlockName, view.ActionName)
	if err != nil {
		return model.ParticipantFields{}, err
	}
	position, err := field(state, view.BlockPosition, view.ActionPosition)
	if err != nil {
		return model.ParticipantFields{}, err
	}
	picture, err := field(state, view.BlockPicture, view.ActionPicture)
	if err != nil {
		return model.ParticipantFields{}, err
	}

	return model.ParticipantFields{
		Name:       name.Value,
		Position:   position.Value,
		PictureURL: picture.Value,
	}, nil
}

// ParseDiscussion reads the generation inputs.
func ParseDiscussion(state *slack.ViewState) (Discussion, error) {
	topic, err := field(state, view.BlockTopic, view.ActionTopic)
	if err != nil {
		return Discussion{}, err
	}
	company, err := field(state, view.BlockCompany, view.ActionCompany)
	if err != nil {
		return Discussion{}, err
	}

	count, err := field(state, view.BlockMessageCount, view.ActionMessageCount)
	if err != nil {
		return Discussion{}, err
	}
	raw := count.SelectedOption.Value
	if raw == "" {
		return Discussion{}, &MissingFieldError{BlockID: view.BlockMessageCount, ActionID: view.ActionMessageCount}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !slices.Contains(model.MessageCounts, n) {
		return Discussion{}, &InvalidFieldError{
			BlockID: view.BlockMessageCount,
			Value:   raw,
			Reason:  "Pick between 2 and 5 messages.",
		}
	}

	channel, err := field(state, view.BlockChannel, view.ActionChannel)
	if err != nil {
		return Discussion{}, err
	}
	if channel.SelectedChannel == "" {
		return Discussion{}, &MissingFieldError{BlockID: view.BlockChannel, ActionID: view.ActionChannel}
	}

	return Discussion{
		Topic:        topic.Value,
		Company:      company.Value,
		MessageCount: n,
		ChannelID:    channel.SelectedChannel,
	}, nil
}

func field(state *slack.ViewState, blockID, actionID string) (slack.BlockAction, error) {
	if state == nil {
		return slack.BlockAction{}, &MissingFieldError{BlockID: blockID, ActionID: actionID}
	}
	block, ok := state.Values[blockID]
	if !ok {
		return slack.BlockAction{}, &MissingFieldError{BlockID: blockID, ActionID: actionID}
	}
	action, ok := block[actionID]
	if !ok {
		return slack.BlockAction{}, &MissingFieldError{BlockID: blockID, ActionID: actionID}
	}
	return action, nil
}
