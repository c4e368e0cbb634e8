package form

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("missing form field")
	ErrInvalidField = errors.New("invalid form field")
)

// MissingFieldError reports a block or input absent from a submitted view.
type MissingFieldError struct {
	BlockID  string
	ActionID string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing form field %s/%s", e.BlockID, e.ActionID)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidFieldError reports a present value that cannot be used.
type InvalidFieldError struct {
	BlockID string
	Value   string
	Reason  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid form field %s (%q): %s", e.BlockID, e.Value, e.Reason)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// FieldErrors turns a form error into the block id -> message map Slack
// expects in a `response_action: errors` reply. Returns nil for other errors.
func FieldErrors(err error) map[string]string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return map[string]string{missing.BlockID: "This field is required."}
	}
	var invalid *InvalidFieldError
	if errors.As(err, &invalid) {
		return map[string]string{invalid.BlockID: invalid.Reason}
	}
	return nil
}
