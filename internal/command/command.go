// Package command turns a line of player input into an invocable action.
package command

import (
	"fmt"

	"github.com/tnwae/nuventure/internal/action"
)

// State is the result category of resolving a line of input.
type State int

const (
	// Empty means the input had no words in it. There is nothing to do.
	Empty State = iota

	// Unknown means the first word was not a known verb. Suggestions for it
	// are given.
	Unknown

	// Help means the input was a request for help. The help lines are given.
	Help

	// Resolved means the input was resolved to an Action.
	Resolved

	// Failed means the verb was known but the rest of the input could not be
	// made to fit it.
	Failed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Unknown:
		return "unknown"
	case Help:
		return "help"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is the result of resolving a line of input. Which of its fields are
// set depends on State.
type Outcome struct {
	State State

	// Verb is the first word of the normalized input.
	Verb string

	// Action is set when State is Resolved.
	Action *action.Action

	// Help holds the lines to show when State is Help. It may be empty if
	// help was asked for a verb that has no help text.
	Help []string

	// Suggestions holds replacement verbs when State is Unknown.
	Suggestions []string
}
