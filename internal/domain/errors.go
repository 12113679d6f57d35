package domain

import (
	"fmt"
	"strings"
)

// InvalidActionError reports an action keyword outside the supported set.
type InvalidActionError struct {
	Action string
}

func NewInvalidActionError(action string) *InvalidActionError {
	return &InvalidActionError{Action: strings.TrimSpace(action)}
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q (expected start, status, stop, or destroy)", e.Action)
}
