// Package nuventure contains a CLI-driven engine for getting commands and
// advancing the game state continuously until the user quits.
package nuventure

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/tnwae/nuventure/data"
	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/command"
	"github.com/tnwae/nuventure/internal/game"
	"github.com/tnwae/nuventure/internal/input"
	"github.com/tnwae/nuventure/internal/journal"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/report"
	"github.com/tnwae/nuventure/internal/tagger"
	"github.com/tnwae/nuventure/internal/verbs"
	"go.uber.org/zap"
)

const consoleOutputWidth = 80

// Options holds the optional settings of an Engine. The zero value runs the
// built-in world and verb table.
type Options struct {
	// WorldFile is the path to a TOML world file. If empty, the built-in world
	// is used.
	WorldFile string

	// VerbFile is the path to a JSON, TOML, or YAML verb table. If empty, the
	// built-in table is used.
	VerbFile string

	// ForceDirect disables readline even when attached to a terminal.
	ForceDirect bool

	// Tagger tags input for the resolver. If nil, a tagger.Lexicon is used.
	Tagger tagger.Tagger

	// Journal, if set, has every line of input recorded to it. The Engine does
	// not close it.
	Journal journal.Store

	Logger *zap.Logger
}

// Engine contains the things needed to run a game from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	state    *game.State
	table    *verbs.Table
	resolver *command.Resolver
	reporter *report.Reporter
	in       command.Reader
	out      *bufio.Writer
	log      *zap.Logger

	journal journal.Store
	session uuid.UUID
	seq     int

	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	var world *game.World
	var err error
	if opts.WorldFile != "" {
		world, err = game.LoadWorld(opts.WorldFile)
	} else {
		world, err = game.ParseWorld(data.World)
	}
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		log:         log,
		journal:     opts.Journal,
		forceDirect: opts.ForceDirect,
	}

	eng.session, err = uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	ioDev := game.IODevice{
		Width: consoleOutputWidth,
		Output: func(s string, a ...interface{}) error {
			return eng.write(fmt.Sprintf(s, a...))
		},
	}

	eng.state, err = game.New(world, ioDev)
	if err != nil {
		return nil, fmt.Errorf("initializing game engine: %w", err)
	}

	if opts.VerbFile != "" {
		eng.table, err = verbs.Load(opts.VerbFile, eng.state.Handlers())
	} else {
		eng.table, err = verbs.LoadJSON(data.Verbs, eng.state.Handlers())
	}
	if err != nil {
		return nil, fmt.Errorf("load verb table: %w", err)
	}

	eng.resolver = command.NewResolver(eng.table, opts.Tagger, nil, command.WithLogger(log))
	eng.reporter = report.New(eng.table)

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Session returns the ID that journal entries of this Engine are recorded
// under.
func (eng *Engine) Session() uuid.UUID {
	return eng.session
}

// Commands returns a table of every command the player can give along with
// its help text, wrapped to the console width.
func (eng *Engine) Commands() string {
	return report.HelpTable(eng.table, consoleOutputWidth)
}

// Won returns whether the player has won the game.
func (eng *Engine) Won() bool {
	return eng.state.Won()
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running game engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the game until the player quits, wins, or loses, input ends, or ctx is
// cancelled. Only the first three are reported as game endings; the others
// are still a clean stop and give a nil error.
func (eng *Engine) RunUntilQuit(ctx context.Context) error {
	introMsg := "Welcome to Nuventure\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "====================\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}
	if err := eng.state.Render(true); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	prompt := &command.Prompt{
		In:       eng.in,
		Out:      eng.out,
		Resolver: eng.resolver,
		Reporter: eng.reporter,
		Width:    consoleOutputWidth,
		Observe: func(line string, out command.Outcome, err error) {
			// resolved lines are recorded once they have been invoked
			if out.State != command.Resolved && out.State != command.Empty {
				eng.record(ctx, out, nil, err)
			}
		},
	}

	for eng.running {
		act, err := prompt.Get(ctx, eng.state.Player())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, input.ErrInterrupted) {
				eng.log.Debug("input ended", zap.Error(err))
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		err = act.Invoke(ctx)
		eng.record(ctx, command.Outcome{State: command.Resolved, Verb: act.Verb()}, act, err)

		if errors.Is(err, action.ErrQuit) {
			eng.running = false
			break
		}
		if err != nil {
			eng.log.Debug("action failed",
				zap.String("input", eng.resolver.LastCommand()),
				zap.String("action", act.String()),
				zap.Error(err),
			)
			msg := report.Wrap(eng.reporter.RenderError(err), consoleOutputWidth)
			if err := eng.write(msg + "\n"); err != nil {
				return err
			}
		}
	}

	return eng.write("Goodbye\n")
}

// record adds a journal entry for the last line resolved. act is the action
// it resolved to, if any, and err is the error from resolving or invoking it.
func (eng *Engine) record(ctx context.Context, out command.Outcome, act *action.Action, err error) {
	if eng.journal == nil {
		return
	}

	eng.seq++
	e := journal.Entry{
		Session: eng.session,
		Seq:     eng.seq,
		Input:   eng.resolver.LastCommand(),
		Outcome: out.State.String(),
		Verb:    out.Verb,
	}
	if act != nil {
		e.Target = act.Target()
		e.Implement = act.Implement()
	}
	if k, ok := nverrors.KindOf(err); ok {
		e.ErrorKind = k.Key()
	}

	if _, err := eng.journal.Record(ctx, e); err != nil {
		eng.log.Warn("could not record journal entry", zap.Int("seq", e.Seq), zap.Error(err))
	}
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
