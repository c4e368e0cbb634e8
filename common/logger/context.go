package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers set the Slack identity once at the boundary and every log line below
// (services, LLM client, poster) picks it up without passing it around.
type LogFields struct {
	TeamID        *string // Slack workspace
	UserID        *string // Slack user who triggered the interaction
	ChannelID     *string // Destination channel, when known
	ParticipantID *int64  // Roster entry being edited or deleted
	Interaction   *string // Canonical interaction kind (e.g. "edit_participant")
	JobID         *string // Background job correlation id
	Component     string  // Component name (e.g. "huddle.service.channel_poster")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.TeamID != nil {
		result.TeamID = new.TeamID
	}
	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.ChannelID != nil {
		result.ChannelID = new.ChannelID
	}
	if new.ParticipantID != nil {
		result.ParticipantID = new.ParticipantID
	}
	if new.Interaction != nil {
		result.Interaction = new.Interaction
	}
	if new.JobID != nil {
		result.JobID = new.JobID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// StringPtrIf returns nil for empty strings so optional Slack ids don't log as "".
func StringPtrIf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like prompts or generated text.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
