package command

import (
	"fmt"
	"strings"

	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/report"
	"github.com/tnwae/nuventure/internal/suggest"
	"github.com/tnwae/nuventure/internal/tagger"
	"github.com/tnwae/nuventure/internal/verbs"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// subject is put in front of input before tagging so that the tagger sees
// an imperative command as a full sentence and tags the verb as a verb.
const subject = "i "

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger that resolutions are logged to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// Resolver turns lines of input into Actions by looking up the verb in a verb
// table and then, for verbs that take arguments, finding the nouns of the
// input with a Tagger.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	table     *verbs.Table
	tagger    tagger.Tagger
	suggester *suggest.Suggester
	lower     cases.Caser
	log       *zap.Logger
	last      string
}

// NewResolver creates a Resolver over t. If tg is nil, a Lexicon tagger for
// the verb vocabulary is used. If s is nil, a suggester over the verb
// vocabulary is used.
func NewResolver(t *verbs.Table, tg tagger.Tagger, s *suggest.Suggester, opts ...Option) *Resolver {
	if tg == nil {
		tg = tagger.NewLexicon(verbs.Vocabulary()...)
	}
	if s == nil {
		s = suggest.ForVerbs()
	}

	r := &Resolver{
		table:     t,
		tagger:    tg,
		suggester: s,
		lower:     cases.Lower(language.Und),
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// LastCommand returns the most recent non-empty input given to Resolve, after
// normalization.
func (r *Resolver) LastCommand() string {
	return r.last
}

// Resolve resolves line into an Outcome for actor. The returned error is
// non-nil when the State of the Outcome is Unknown or Failed; in those cases
// it carries an *nverrors.Error unless the tagger itself failed.
func (r *Resolver) Resolve(actor action.Actor, line string) (Outcome, error) {
	norm := r.normalize(line)
	if norm == "" {
		return Outcome{State: Empty}, nil
	}
	r.last = norm

	out, err := r.resolve(actor, norm)

	r.log.Debug("resolved command",
		zap.String("input", norm),
		zap.Stringer("state", out.State),
		zap.String("verb", out.Verb),
		zap.Error(err),
	)

	return out, err
}

func (r *Resolver) normalize(line string) string {
	return strings.Join(strings.Fields(r.lower.String(line)), " ")
}

func (r *Resolver) resolve(actor action.Actor, norm string) (Outcome, error) {
	words := strings.Fields(norm)
	lead, rest := words[0], words[1:]

	typ, err := verbs.Classify(lead)
	if err != nil {
		out := Outcome{
			State:       Unknown,
			Verb:        lead,
			Suggestions: r.suggester.Suggest(lead),
		}
		return out, nverrors.Unrecognized(lead)
	}

	if typ == verbs.Help {
		return r.help(rest), nil
	}

	def, ok := r.table.Lookup(lead)
	if !ok {
		// a loaded table covers the whole vocabulary, so this is a
		// programming error.
		return Outcome{State: Failed, Verb: lead}, fmt.Errorf("verb %q has no definition", lead)
	}

	failed := Outcome{State: Failed, Verb: lead}

	if !typ.TakesArguments() {
		if len(rest) > 0 {
			return failed, nverrors.BadArg(lead, strings.Join(rest, " "))
		}

		var target string
		if typ == verbs.Directional {
			target = lead
		}
		act := action.New(lead, actor, target, "", def.Handler)
		return Outcome{State: Resolved, Verb: lead, Action: act}, nil
	}

	if len(rest) == 0 {
		return failed, nverrors.NoArgs(lead)
	}

	nouns, err := r.nouns(lead, norm)
	if err != nil {
		return failed, err
	}

	if len(nouns) == 0 {
		return failed, nverrors.NoArgs(lead)
	}
	if len(nouns) != typ.ArgCount() {
		return failed, nverrors.BadArg(lead, strings.Join(nouns, " "))
	}

	var target, implement string
	switch typ {
	case verbs.TargetFirst:
		target, implement = nouns[0], nouns[1]
	case verbs.ImplementFirst:
		implement, target = nouns[0], nouns[1]
	default:
		target = nouns[0]
	}

	act := action.New(lead, actor, target, implement, def.Handler)
	return Outcome{State: Resolved, Verb: lead, Action: act}, nil
}

// nouns tags the input and returns the noun candidates in input order. The
// lead word is the command verb and never counts as a noun, whether or not the
// tagger saw it as a verb. Any later verb-tagged token is neither a second verb
// nor a noun.
func (r *Resolver) nouns(lead, norm string) ([]string, error) {
	toks, err := r.tagger.Tag(subject + norm)
	if err != nil {
		return nil, fmt.Errorf("tag %q: %w", norm, err)
	}

	var nouns []string
	skippedLead := false
	for _, tk := range toks {
		if !skippedLead && strings.EqualFold(tk.Text, lead) {
			skippedLead = true
			continue
		}
		if tagger.IsVerbTag(tk.Tag) {
			continue
		}
		if tagger.IsNounTag(tk.Tag) {
			nouns = append(nouns, r.lower.String(tk.Text))
		}
	}

	return nouns, nil
}

func (r *Resolver) help(rest []string) Outcome {
	out := Outcome{State: Help, Verb: "help"}

	if len(rest) > 0 && verbs.IsKnown(rest[0]) {
		if def, ok := r.table.Lookup(rest[0]); ok {
			if line := report.HelpLine(rest[0], def); line != "" {
				out.Help = []string{line}
			}
			return out
		}
	}

	out.Help = report.HelpListing(r.table)
	return out
}
