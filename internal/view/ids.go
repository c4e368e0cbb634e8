package view

// Block and action ids shared by the view builders, form intake and the
// interaction mapper. They are part of the Slack-facing contract: changing
// one invalidates views already published to users.
const (
	CallbackHome               = "home_view"
	CallbackAddParticipant     = "add_user_modal"
	CallbackEditParticipant    = "edit_user_modal_" // + participant id
	CallbackGenerateDiscussion = "generate_discussion_modal"

	ActionAddParticipant    = "add_conversation_user"
	ActionEditParticipant   = "edit_user_"   // + participant id
	ActionDeleteParticipant = "delete_user_" // + participant id
	ActionGenerate          = "generate_discussion"

	BlockTopic         = "topic_block"
	ActionTopic        = "topic_input"
	BlockCompany       = "company_block"
	ActionCompany      = "company_input"
	BlockMessageCount  = "num_messages_block"
	ActionMessageCount = "num_messages_select"
	BlockChannel       = "channel_block"
	ActionChannel      = "channel_select"

	BlockName      = "name_block"
	ActionName     = "name_input"
	BlockPosition  = "position_block"
	ActionPosition = "position_input"
	BlockPicture   = "picture_block"
	ActionPicture  = "picture_input"
)
