package nuventure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tnwae/nuventure/internal/journal"
	"github.com/tnwae/nuventure/internal/journal/bolt"
	"github.com/tnwae/nuventure/internal/journal/inmem"
	"github.com/tnwae/nuventure/internal/journal/sqlite"
	"github.com/tnwae/nuventure/internal/tagger"
	"github.com/tnwae/nuventure/internal/verbs"
)

// Tagger names accepted by NewTagger.
const (
	TaggerLexicon = "lexicon"
	TaggerProse   = "prose"
)

// NewTagger returns the tagger with the given name. The empty string selects
// the lexicon tagger.
func NewTagger(name string) (tagger.Tagger, error) {
	switch strings.ToLower(name) {
	case TaggerLexicon, "":
		return tagger.NewLexicon(verbs.Vocabulary()...), nil
	case TaggerProse:
		return tagger.NewProse(), nil
	default:
		return nil, fmt.Errorf("tagger not one of %q or %q: %q", TaggerLexicon, TaggerProse, name)
	}
}

// JournalType is the type of store a journal is kept in.
type JournalType string

func (jt JournalType) String() string {
	return string(jt)
}

const (
	JournalNone     JournalType = "none"
	JournalInMemory JournalType = "inmem"
	JournalSQLite   JournalType = "sqlite"
	JournalBolt     JournalType = "bolt"
)

// ParseJournalType parses a string found in a journal DSN into a
// JournalType.
func ParseJournalType(s string) (JournalType, error) {
	switch strings.ToLower(s) {
	case JournalNone.String(), "":
		return JournalNone, nil
	case JournalInMemory.String():
		return JournalInMemory, nil
	case JournalSQLite.String():
		return JournalSQLite, nil
	case JournalBolt.String():
		return JournalBolt, nil
	default:
		return JournalNone, fmt.Errorf("journal type not one of 'none', 'inmem', 'sqlite', or 'bolt': %q", s)
	}
}

// JournalConfig contains settings for connecting to a journal store.
type JournalConfig struct {
	// Type is the type of store. It also determines which of the other
	// fields are used.
	Type JournalType

	// Path is the file the store is kept in, for SQLite and Bolt.
	Path string
}

// Enabled returns whether the config selects a store at all.
func (jc JournalConfig) Enabled() bool {
	return jc.Type != JournalNone && jc.Type != ""
}

// Connect opens the configured store. It is an error to call Connect on a
// config of type JournalNone.
func (jc JournalConfig) Connect() (journal.Store, error) {
	switch jc.Type {
	case JournalInMemory:
		return inmem.New(), nil
	case JournalSQLite, JournalBolt:
		if dir := filepath.Dir(jc.Path); dir != "" {
			if err := os.MkdirAll(dir, 0770); err != nil {
				return nil, fmt.Errorf("create journal dir: %w", err)
			}
		}

		var store journal.Store
		var err error
		if jc.Type == JournalSQLite {
			store, err = sqlite.Open(jc.Path)
		} else {
			store, err = bolt.Open(jc.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("initialize %s: %w", jc.Type, err)
		}
		return store, nil
	case JournalNone, "":
		return nil, fmt.Errorf("cannot connect to 'none' journal")
	default:
		return nil, fmt.Errorf("unknown journal type: %q", jc.Type.String())
	}
}

// ParseJournalDSN parses a journal connection string of the form
// "type:path" (or just "type" if no path is required) into a JournalConfig.
// For example, "sqlite:journal.db" keeps the journal in a SQLite file and
// "inmem" keeps it in memory. The empty string and "none" disable the
// journal.
func ParseJournalDSN(s string) (JournalConfig, error) {
	var path string
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		path = strings.TrimSpace(parts[1])
	}

	jt, err := ParseJournalType(strings.TrimSpace(parts[0]))
	if err != nil {
		return JournalConfig{}, fmt.Errorf("unsupported journal: %w", err)
	}

	switch jt {
	case JournalNone, JournalInMemory:
		if path != "" {
			return JournalConfig{}, fmt.Errorf("unsupported param(s) for %s journal: %s", jt, path)
		}
		return JournalConfig{Type: jt}, nil
	default:
		if path == "" {
			return JournalConfig{}, fmt.Errorf("%s journal requires path to file after ':'", jt)
		}
		return JournalConfig{Type: jt, Path: path}, nil
	}
}
