// Package nverrors holds the error types produced while interpreting player
// commands, along with helpers for getting the message that should be shown to
// the player for an error.
package nverrors

import (
	"errors"
	"fmt"
)

// Kind is the category of a command interpretation failure. Verb tables key
// their error templates by the Key of a Kind.
type Kind int

const (
	// UnrecognizedVerb is the kind of error where the first word of the input
	// is not a known verb.
	UnrecognizedVerb Kind = iota

	// BadArgument is the kind of error where arguments were given to a verb
	// but are unusable, either because the wrong number were supplied or
	// because they don't refer to something that can be acted on.
	BadArgument

	// BadTarget is the kind of error where the target of a verb does not
	// exist.
	BadTarget

	// MissingArgument is the kind of error where a verb that needs arguments
	// was given none.
	MissingArgument

	// InvalidGameState is the kind of error where the command is well-formed
	// but the world is not in a state where it can be carried out.
	InvalidGameState
)

var kindKeys = []string{
	UnrecognizedVerb: "badverb",
	BadArgument:      "badarg",
	BadTarget:        "badtgt",
	MissingArgument:  "noargs",
	InvalidGameState: "badstate",
}

var kindNames = []string{
	UnrecognizedVerb: "UnrecognizedVerb",
	BadArgument:      "BadArgument",
	BadTarget:        "BadTarget",
	MissingArgument:  "MissingArgument",
	InvalidGameState: "InvalidGameState",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Key returns the short key that identifies k in verb table error text.
func (k Kind) Key() string {
	if k < 0 || int(k) >= len(kindKeys) {
		return ""
	}
	return kindKeys[k]
}

// ParseKind returns the Kind whose Key is key.
func ParseKind(key string) (Kind, error) {
	for i := range kindKeys {
		if kindKeys[i] == key {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("not a known error kind key: %q", key)
}

// Error is a failure to interpret or carry out a command. It records the
// verb being processed and, where there is one, the argument that caused the
// problem.
//
// Callers should branch on the failure by using errors.As or KindOf rather
// than by inspecting the message.
type Error struct {
	Kind Kind
	Verb string
	Arg  string
}

func (e *Error) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("%s: %s (arg %q)", e.Kind.String(), e.Verb, e.Arg)
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Verb)
}

// Is returns whether target is an *Error of the same Kind. A target with an
// empty Verb matches errors for any verb.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Verb == "" || t.Verb == e.Verb
}

// Sentinels for use with errors.Is. Each matches any *Error of its Kind
// regardless of the verb or argument it carries.
var (
	ErrUnrecognizedVerb = &Error{Kind: UnrecognizedVerb}
	ErrBadArgument      = &Error{Kind: BadArgument}
	ErrBadTarget        = &Error{Kind: BadTarget}
	ErrMissingArgument  = &Error{Kind: MissingArgument}
	ErrInvalidGameState = &Error{Kind: InvalidGameState}
)

// Unrecognized returns an UnrecognizedVerb error for the given word.
func Unrecognized(word string) error {
	return &Error{Kind: UnrecognizedVerb, Verb: word, Arg: word}
}

// BadArg returns a BadArgument error.
func BadArg(verb, arg string) error {
	return &Error{Kind: BadArgument, Verb: verb, Arg: arg}
}

// BadTgt returns a BadTarget error.
func BadTgt(verb, arg string) error {
	return &Error{Kind: BadTarget, Verb: verb, Arg: arg}
}

// NoArgs returns a MissingArgument error.
func NoArgs(verb string) error {
	return &Error{Kind: MissingArgument, Verb: verb}
}

// GameState returns an InvalidGameState error.
func GameState(verb, arg string) error {
	return &Error{Kind: InvalidGameState, Verb: verb, Arg: arg}
}

// KindOf returns the Kind of the first *Error in err's chain. The second
// return value is false if err has no *Error in its chain.
func KindOf(err error) (Kind, bool) {
	var nvErr *Error
	if errors.As(err, &nvErr) {
		return nvErr.Kind, true
	}
	return 0, false
}

// ConfigError is returned when a verb table cannot be loaded because it is
// not consistent with the verb vocabulary or the available handlers.
type ConfigError struct {
	Verb   string
	Reason string
	wrap   error
}

// Configf returns a new *ConfigError for verb with a formatted reason.
func Configf(verb string, format string, a ...interface{}) *ConfigError {
	return &ConfigError{Verb: verb, Reason: fmt.Sprintf(format, a...)}
}

// WrapConfig returns a new *ConfigError for verb that wraps err.
func WrapConfig(err error, verb string, reason string) *ConfigError {
	return &ConfigError{Verb: verb, Reason: reason, wrap: err}
}

func (e *ConfigError) Error() string {
	msg := "verb table"
	if e.Verb != "" {
		msg += fmt.Sprintf(": %q", e.Verb)
	}
	msg += ": " + e.Reason
	if e.wrap != nil {
		msg += ": " + e.wrap.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.wrap
}
