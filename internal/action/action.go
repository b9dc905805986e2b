// Package action contains the fully-resolved, invocable form of a player
// command.
package action

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSpent is returned by Invoke when the Action has already been invoked.
	ErrSpent = errors.New("action has already been invoked")

	// ErrQuit is returned by a Handler to signal that the game should end.
	ErrQuit = errors.New("quit requested")
)

// Actor is the entity that invokes an Action.
type Actor interface {
	Name() string
}

// Handler carries out an Action against the world.
type Handler func(ctx context.Context, a *Action) error

// HandlerSet maps handler identifiers, as named in a verb table, to the
// Handler they refer to.
type HandlerSet map[string]Handler

// Lookup returns the Handler registered under id.
func (hs HandlerSet) Lookup(id string) (Handler, bool) {
	h, ok := hs[id]
	return h, ok && h != nil
}

// Action is a resolved command: a verb, the actor who issued it, its
// arguments, and the handler that carries it out. It can be invoked exactly
// once.
//
// Action should not be used directly; create one with New.
type Action struct {
	verb      string
	invoker   Actor
	target    string
	implement string
	handler   Handler
	spent     bool
}

// New creates a new Action. target and implement may be empty if the verb does
// not take them. invoker is not owned by the Action.
func New(verb string, invoker Actor, target, implement string, h Handler) *Action {
	return &Action{
		verb:      verb,
		invoker:   invoker,
		target:    target,
		implement: implement,
		handler:   h,
	}
}

// Verb returns the verb word the action was resolved from.
func (a *Action) Verb() string {
	return a.verb
}

// Invoker returns the Actor that issued the action.
func (a *Action) Invoker() Actor {
	return a.invoker
}

// Target returns the object the action is performed on, if any.
func (a *Action) Target() string {
	return a.target
}

// Implement returns the object used to perform the action, if any.
func (a *Action) Implement() string {
	return a.implement
}

// Spent returns whether Invoke has already been called.
func (a *Action) Spent() bool {
	return a.spent
}

// Invoke carries out the action by calling its handler. Any error the handler
// returns is passed back unchanged. Calling Invoke a second time returns
// ErrSpent without calling the handler.
func (a *Action) Invoke(ctx context.Context) error {
	if a.spent {
		return ErrSpent
	}
	a.spent = true

	if a.handler == nil {
		return fmt.Errorf("%s: no handler bound", a.verb)
	}

	return a.handler(ctx, a)
}

func (a *Action) String() string {
	name := "<nobody>"
	if a.invoker != nil {
		name = a.invoker.Name()
	}

	s := fmt.Sprintf("%s invokes %s", name, a.verb)
	if a.target != "" {
		s += " on " + a.target
	}
	if a.implement != "" {
		s += " with " + a.implement
	}
	return s
}
