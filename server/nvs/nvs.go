// Package nvs has services for resolving player input on the Nuventure server
// decoupled from the API that accesses it.
package nvs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tnwae/nuventure/data"
	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/command"
	"github.com/tnwae/nuventure/internal/game"
	"github.com/tnwae/nuventure/internal/journal"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/report"
	"github.com/tnwae/nuventure/internal/tagger"
	"github.com/tnwae/nuventure/internal/verbs"
	"github.com/tnwae/nuventure/server/serr"
	"go.uber.org/zap"
)

// ErrNotInvocable is returned by the actions the service resolves if they are
// invoked. The server only resolves input; there is no game to act on.
var ErrNotInvocable = errors.New("actions resolved by the server cannot be invoked")

// client is the actor that server-resolved actions are bound to.
type client struct{}

func (client) Name() string {
	return "client"
}

// HandlerSet returns a handler for every identifier a built-in verb table may
// name. Each returns ErrNotInvocable.
func HandlerSet() action.HandlerSet {
	hs := action.HandlerSet{}
	for _, name := range game.HandlerNames() {
		hs[name] = func(ctx context.Context, a *action.Action) error {
			return ErrNotInvocable
		}
	}
	return hs
}

// LoadTable loads the verb table at path, or the built-in table if path is
// empty.
func LoadTable(path string) (*verbs.Table, error) {
	if path == "" {
		return verbs.LoadJSON(data.Verbs, HandlerSet())
	}
	return verbs.Load(path, HandlerSet())
}

// Resolution is the result of resolving one line of input.
type Resolution struct {
	Session uuid.UUID

	// Seq is the position of the line in its session. It is 0 for empty
	// input, which is not counted.
	Seq int

	// Input is the line after normalization.
	Input string

	Outcome command.Outcome

	// Err is the error the line resolved to, if any.
	Err error

	// Message is the text a player would be shown for the outcome. It is
	// empty for Resolved and Empty outcomes.
	Message string
}

// Service resolves player input against a verb table and journals it. It is
// safe for concurrent use.
//
// The zero-value of Service is not ready to be used; call New.
type Service struct {
	mtx      sync.Mutex
	resolver *command.Resolver
	reporter *report.Reporter
	table    *verbs.Table
	journal  journal.Store
	seqs     map[uuid.UUID]int
	log      *zap.Logger

	resolutions     *prometheus.CounterVec
	journalFailures prometheus.Counter
}

// Config holds what a Service needs. Only Table is required.
type Config struct {
	Table *verbs.Table

	// Tagger tags input. If nil, a tagger.Lexicon is used.
	Tagger tagger.Tagger

	// Journal, if set, has every resolved line recorded to it.
	Journal journal.Store

	// Registry, if set, has the service's metrics registered with it.
	Registry prometheus.Registerer

	Logger *zap.Logger
}

// New creates a new Service.
func New(cfg Config) (*Service, error) {
	if cfg.Table == nil {
		return nil, fmt.Errorf("no verb table given")
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	svc := &Service{
		resolver: command.NewResolver(cfg.Table, cfg.Tagger, nil, command.WithLogger(log)),
		reporter: report.New(cfg.Table),
		table:    cfg.Table,
		journal:  cfg.Journal,
		seqs:     make(map[uuid.UUID]int),
		log:      log,

		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nuventure",
			Name:      "resolutions_total",
			Help:      "Lines of input resolved, by outcome state.",
		}, []string{"state"}),
		journalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nuventure",
			Name:      "journal_failures_total",
			Help:      "Lines of input that could not be recorded to the journal.",
		}),
	}

	if cfg.Registry != nil {
		for _, c := range []prometheus.Collector{svc.resolutions, svc.journalFailures} {
			if err := cfg.Registry.Register(c); err != nil {
				return nil, fmt.Errorf("register metrics: %w", err)
			}
		}
	}

	return svc, nil
}

// Verbs returns the definitions of the verb table in use.
func (svc *Service) Verbs() []*verbs.Definition {
	return svc.table.Definitions()
}

// HelpLine returns the help line for the named definition.
func (svc *Service) HelpLine(def *verbs.Definition) string {
	return report.HelpLine(def.Name, def)
}

// Resolve resolves line for the given session. If session is uuid.Nil, a new
// session is started. The returned error is only non-nil when the line could
// not be journaled; failures to resolve are reported in the Resolution.
func (svc *Service) Resolve(ctx context.Context, session uuid.UUID, line string) (Resolution, error) {
	if session == uuid.Nil {
		var err error
		session, err = uuid.NewRandom()
		if err != nil {
			return Resolution{}, fmt.Errorf("could not generate session ID: %w", err)
		}
	}

	svc.mtx.Lock()
	defer svc.mtx.Unlock()

	out, resErr := svc.resolver.Resolve(client{}, line)
	res := Resolution{
		Session: session,
		Outcome: out,
		Err:     resErr,
	}
	svc.resolutions.WithLabelValues(out.State.String()).Inc()

	if out.State == command.Empty {
		return res, nil
	}
	res.Input = svc.resolver.LastCommand()

	switch out.State {
	case command.Help:
		res.Message = strings.Join(out.Help, "\n")
	case command.Unknown:
		res.Message = report.Unrecognized(out.Verb, out.Suggestions)
	case command.Failed:
		res.Message = svc.reporter.RenderError(resErr)
	}

	seq, err := svc.nextSeq(ctx, session)
	if err != nil {
		svc.journalFailures.Inc()
		return res, err
	}
	res.Seq = seq

	if svc.journal != nil {
		e := journal.Entry{
			Session: session,
			Seq:     seq,
			Input:   res.Input,
			Outcome: out.State.String(),
			Verb:    out.Verb,
		}
		if out.Action != nil {
			e.Target = out.Action.Target()
			e.Implement = out.Action.Implement()
		}
		if k, ok := nverrors.KindOf(resErr); ok {
			e.ErrorKind = k.Key()
		}

		if _, err := svc.journal.Record(ctx, e); err != nil {
			svc.journalFailures.Inc()
			return res, serr.WrapDB("could not record journal entry", err)
		}
	}

	return res, nil
}

// nextSeq returns the next sequence number of session. A session not seen
// since startup continues from what the journal already holds for it.
func (svc *Service) nextSeq(ctx context.Context, session uuid.UUID) (int, error) {
	last, ok := svc.seqs[session]
	if !ok && svc.journal != nil {
		existing, err := svc.journal.GetAllBySession(ctx, session)
		if err != nil {
			return 0, serr.WrapDB("could not read journal", err)
		}
		if len(existing) > 0 {
			last = existing[len(existing)-1].Seq
		}
	}

	svc.seqs[session] = last + 1
	return last + 1, nil
}

// Journal returns every journal entry of session. If the service has no
// journal, the error matches serr.ErrNotFound.
func (svc *Service) Journal(ctx context.Context, session uuid.UUID) ([]journal.Entry, error) {
	if svc.journal == nil {
		return nil, serr.New("journaling is disabled", serr.ErrNotFound)
	}

	entries, err := svc.journal.GetAllBySession(ctx, session)
	if err != nil {
		return nil, serr.WrapDB("could not read journal", err)
	}
	if len(entries) < 1 {
		return nil, serr.New("no such session", serr.ErrNotFound)
	}
	return entries, nil
}
