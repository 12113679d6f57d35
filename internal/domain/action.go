package domain

import "strings"

type Action string

const (
	ActionStart   Action = "start"
	ActionStatus  Action = "status"
	ActionStop    Action = "stop"
	ActionDestroy Action = "destroy"
)

// Actions lists the supported actions in display order.
func Actions() []Action {
	return []Action{ActionStart, ActionStatus, ActionStop, ActionDestroy}
}

func (a Action) IsValid() bool {
	switch a {
	case ActionStart, ActionStatus, ActionStop, ActionDestroy:
		return true
	}
	return false
}

// ParseAction maps user input to an Action, ignoring case and surrounding whitespace.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", NewInvalidActionError(s)
	}
	return a, nil
}
