package command

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/report"
)

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single user command. It will block until one is
	// ready or ctx is done. If there is an error or input is at end (EOF),
	// the returned string will be empty.
	//
	// When error is io.EOF, string will always be empty. If EOF was encountered
	// on a call but some input was received, the input will be returned and
	// error will be nil, and the next call to ReadCommand will return "",
	// io.EOF.
	ReadCommand(ctx context.Context) (string, error)

	// Close performs any operations required to clean the resources created by
	// the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}

// Prompt reads lines of input and resolves them until one resolves to an
// Action. Everything else (help, suggestions, and failures) is written to
// Out.
type Prompt struct {
	In       Reader
	Out      *bufio.Writer
	Resolver *Resolver
	Reporter *report.Reporter

	// Width is the column that failure messages are wrapped at. Zero disables
	// wrapping.
	Width int

	// Observe, if set, is called with every line read and what it resolved
	// to.
	Observe func(line string, out Outcome, err error)
}

// Get obtains a single action from input by reading from p.In. Errors from
// the Reader are returned wrapped; callers can check for io.EOF with
// errors.Is.
//
// Note that this function does not check if the action can be carried out,
// only that one can be resolved from the user input.
func (p *Prompt) Get(ctx context.Context, actor action.Actor) (*action.Action, error) {
	for {
		line, err := p.In.ReadCommand(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get input: %w", err)
		}

		out, resErr := p.Resolver.Resolve(actor, line)
		if p.Observe != nil {
			p.Observe(line, out, resErr)
		}

		var msg string
		switch out.State {
		case Resolved:
			return out.Action, nil
		case Empty:
			continue
		case Help:
			if len(out.Help) < 1 {
				continue
			}
			msg = strings.Join(out.Help, "\n")
		case Unknown:
			msg = report.Unrecognized(out.Verb, out.Suggestions)
		case Failed:
			msg = p.Reporter.RenderError(resErr)
			if p.Width > 0 {
				msg = report.Wrap(msg, p.Width)
			}
		}

		if _, err := p.Out.WriteString(msg + "\n"); err != nil {
			return nil, fmt.Errorf("could not write output: %w", err)
		}
		if err := p.Out.Flush(); err != nil {
			return nil, fmt.Errorf("could not flush output: %w", err)
		}
	}
}
