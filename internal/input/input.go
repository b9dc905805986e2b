// Package input contains identifiers used in getting command input from the
// CLI or other sources of input.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// ErrInterrupted is returned by ReadCommand when reading was stopped by the
// user pressing Ctrl-C or by the context being cancelled.
var ErrInterrupted = errors.New("input interrupted")

type lineResult struct {
	line string
	err  error
}

// DirectCommandReader implements command.Reader and reads commands from any
// generic input stream directly. It can be used generically with any io.Reader
// but does not sanitize the input of control and escape sequences.
//
// Lines are read by a single background goroutine, started on the first call
// to ReadCommand, so that a blocked read can be abandoned when its context is
// cancelled. Close stops the goroutine once its pending read returns.
//
// DirectCommandReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectCommandReader struct {
	r     *bufio.Reader
	lines chan lineResult
	start sync.Once

	done     chan struct{}
	stop     sync.Once
	finished chan struct{}
}

// InteractiveCommandReader implements command.Reader and reads commands from
// stdin using a go implementation of the GNU Readline library. This keeps input
// clear of all typing and editing escape sequences and enables the use of
// command history. This should in general probably only be used when directly
// connecting to a TTY for input.
//
// InteractiveCommandReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl *readline.Instance
}

// NewDirectReader creates a new DirectCommandReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r:        bufio.NewReader(r),
		lines:    make(chan lineResult),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// NewInteractiveReader creates a new InteractiveCommandReader and initializes
// readline. The returned InteractiveCommandReader must have Close() called on
// it before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveCommandReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{rl: rl}, nil
}

// Close cleans up resources associated with the DirectCommandReader. It does
// not close the underlying stream, so a read already blocked on it keeps the
// background goroutine alive until that read returns.
func (dcr *DirectCommandReader) Close() error {
	dcr.stop.Do(func() {
		close(dcr.done)
	})
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveCommandReader.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

func (dcr *DirectCommandReader) pump() {
	defer close(dcr.finished)
	defer close(dcr.lines)
	for {
		line, err := dcr.r.ReadString('\n')
		select {
		case dcr.lines <- lineResult{line: line, err: err}:
		case <-dcr.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// ReadCommand reads the next non-blank line from the input stream. The
// returned string will only be empty if there is an error.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If ctx is done first, error will be ErrInterrupted. If any other
// error occurs, the returned string will be empty and error will be that
// error.
func (dcr *DirectCommandReader) ReadCommand(ctx context.Context) (string, error) {
	dcr.start.Do(func() {
		go dcr.pump()
	})

	for {
		select {
		case <-ctx.Done():
			return "", ErrInterrupted
		case res, ok := <-dcr.lines:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil && (res.err != io.EOF || res.line == "") {
				return "", res.err
			}

			line := strings.TrimSpace(res.line)
			if line != "" {
				return line, nil
			}
			if res.err == io.EOF {
				return "", io.EOF
			}
		}
	}
}

// ReadCommand reads the next command from stdin. The returned string will only
// be empty if there is an error, otherwise this function is blocked on until a
// line consisting of more than empty or whitespace-only input is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If the user presses Ctrl-C, error will be ErrInterrupted. If any
// other error occurs, the returned string will be empty and error will be
// that error.
//
// readline cannot be woken from a blocked read, so ctx is only checked
// between lines.
func (icr *InteractiveCommandReader) ReadCommand(ctx context.Context) (string, error) {
	for {
		if ctx.Err() != nil {
			return "", ErrInterrupted
		}

		line, err := icr.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
}
