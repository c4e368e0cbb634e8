package model

// Allowed message counts offered by the generation form.
var MessageCounts = []int{2, 3, 4, 5}

// ConversationRequest describes one generation run. It is never stored.
type ConversationRequest struct {
	Topic        string
	Company      string
	MessageCount int
	ChannelID    string
	RequestedBy  string // Slack user id, for error notifications
}

// GeneratedConversation holds at most MessageCount plain-text lines.
// Line i is spoken by roster entry i mod len(roster).
type GeneratedConversation struct {
	Lines []string
}

// Speaker returns the roster entry that says line i.
// The caller guarantees len(roster) > 0.
func Speaker(roster []Participant, i int) Participant {
	return roster[i%len(roster)]
}

// PostedMessage is one impersonated message as it landed in Slack.
type PostedMessage struct {
	TS       string
	ThreadTS string // empty for the thread parent
	Speaker  Participant
	Text     string
}

// PostedConversation is the outcome of a posting run.
type PostedConversation struct {
	ChannelID string
	ParentTS  string
	Messages  []PostedMessage
}
