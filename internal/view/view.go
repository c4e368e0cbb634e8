// Package view builds the Block Kit payloads the bot publishes: the App Home
// tab and the participant/discussion modals.
//
// Every builder is a pure function of its inputs. Callers re-render the whole
// view after each roster change; nothing here is incremental.
package view

import (
	"fmt"
	"strconv"

	"github.com/slack-go/slack"

	"basegraph.app/huddle/common/id"
	"basegraph.app/huddle/internal/model"
)

const (
	// PlaceholderText is posted while a conversation is being generated.
	PlaceholderText = "Generating conversation..."
	// FailedText replaces the placeholder when generation produced nothing.
	FailedText = "Could not generate a conversation."
)

// HomeView renders the generation form followed by one card per participant.
func HomeView(roster []model.Participant) slack.HomeTabViewRequest {
	blocks := discussionInputs()
	blocks = append(blocks,
		slack.NewSectionBlock(markdown("*Add conversation users:*"), nil, nil),
		slack.NewActionBlock("add_user_actions",
			slack.NewButtonBlockElement(ActionAddParticipant, "", plain("Add User")),
		),
		slack.NewDividerBlock(),
		slack.NewActionBlock("generate_actions",
			slack.NewButtonBlockElement(ActionGenerate, "", plain("Submit")).WithStyle(slack.StylePrimary),
		),
	)

	for i, p := range roster {
		blocks = append(blocks, participantCard(i, p)...)
	}

	return slack.HomeTabViewRequest{
		Type:       slack.VTHomeTab,
		CallbackID: CallbackHome,
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

func participantCard(index int, p model.Participant) []slack.Block {
	pid := id.Format(p.ID)

	var accessory *slack.Accessory
	if p.PictureURL != "" {
		accessory = slack.NewAccessory(slack.NewImageBlockElement(p.PictureURL, p.Name))
	}

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("User %d", index+1), true, false)),
		slack.NewSectionBlock(
			markdown(fmt.Sprintf("*Name:*\n%s\n\n*Position:*\n%s", p.Name, p.Position)),
			nil,
			accessory,
		),
		slack.NewDividerBlock(),
		slack.NewActionBlock("user_actions_"+pid,
			slack.NewButtonBlockElement(ActionEditParticipant+pid, pid, plain("Edit")),
			slack.NewButtonBlockElement(ActionDeleteParticipant+pid, pid, plain("Delete")).WithStyle(slack.StyleDanger),
		),
	}
}

// ParticipantModal renders the add form when p is nil and the pre-filled edit
// form otherwise. Field layout is identical in both modes.
func ParticipantModal(p *model.Participant) slack.ModalViewRequest {
	callbackID := CallbackAddParticipant
	title, submit := "Add User", "Add"
	var current model.ParticipantFields
	if p != nil {
		callbackID = CallbackEditParticipant + id.Format(p.ID)
		title, submit = "Edit User", "Save"
		current = p.Fields()
	}

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: callbackID,
		Title:      plain(title),
		Submit:     plain(submit),
		Close:      plain("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			textInput(BlockName, ActionName, "Name", "Enter a name", current.Name),
			textInput(BlockPosition, ActionPosition, "Position", "Enter a job position", current.Position),
			textInput(BlockPicture, ActionPicture, "Picture", "Enter a picture URL", current.PictureURL),
		}},
	}
}

// DiscussionModal carries the same inputs as the home form, for starting a
// generation from a slash command.
func DiscussionModal() slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackGenerateDiscussion,
		Title:      plain("Generate Discussion"),
		Submit:     plain("Generate"),
		Close:      plain("Cancel"),
		Blocks:     slack.Blocks{BlockSet: discussionInputs()},
	}
}

// Greeting is the reply to an app mention.
func Greeting(userID string) string {
	return fmt.Sprintf("Hello, <@%s>! I'm here to help.", userID)
}

func discussionInputs() []slack.Block {
	counts := make([]*slack.OptionBlockObject, 0, len(model.MessageCounts))
	for _, n := range model.MessageCounts {
		v := strconv.Itoa(n)
		counts = append(counts, slack.NewOptionBlockObject(v, plain(v), nil))
	}

	return []slack.Block{
		textInput(BlockTopic, ActionTopic, "Topic:", "Enter a topic", ""),
		textInput(BlockCompany, ActionCompany, "Company:", "Enter a company", ""),
		slack.NewInputBlock(BlockMessageCount, plain("Number of messages"), nil,
			slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain("Select number of messages"), ActionMessageCount, counts...),
		),
		slack.NewInputBlock(BlockChannel, plain("Channel:"), nil,
			slack.NewOptionsSelectBlockElement(slack.OptTypeChannels, plain("Select a channel"), ActionChannel),
		),
	}
}

func textInput(blockID, actionID, label, placeholder, initial string) *slack.InputBlock {
	element := slack.NewPlainTextInputBlockElement(plain(placeholder), actionID)
	element.InitialValue = initial
	return slack.NewInputBlock(blockID, plain(label), nil, element)
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}
