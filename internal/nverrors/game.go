package nverrors

import "fmt"

// interpreterError is an error caused by a command that cannot be carried out
// in a way that is not covered by the error Kinds. It includes a
// human-readable message to show to the player as well as a more technical
// description.
type interpreterError struct {
	msg   string
	human string
}

func (e *interpreterError) Error() string {
	return e.msg
}

// GameMessage shows the message that should be displayed in-game to describe
// the error.
func (e *interpreterError) GameMessage() string {
	return e.human
}

// Interpreter returns a new error that has both the message to show the
// player and the technical description of the error.
func Interpreter(game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", game)
	}
	return &interpreterError{
		msg:   technical,
		human: game,
	}
}

// Interpreterf returns a new error with a formatted message to show to the
// player and an automatically generated Error() description.
func Interpreterf(gameFormat string, a ...interface{}) error {
	return Interpreter(fmt.Sprintf(gameFormat, a...), "")
}

// GameMessage gets the message to display to the console for the given error.
// If err has an interpreter error in its chain, its game message is returned.
// Otherwise, err.Error() is returned.
func GameMessage(err error) string {
	for e := err; e != nil; {
		if intErr, ok := e.(*interpreterError); ok {
			return intErr.GameMessage()
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return err.Error()
}
