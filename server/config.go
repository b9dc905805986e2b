package server

import (
	"fmt"
	"net"
	"strconv"

	"github.com/tnwae/nuventure"
	"github.com/tnwae/nuventure/internal/tagger"
	"go.uber.org/zap"
)

// DefaultListen is the address the server listens on if none is configured.
const DefaultListen = "localhost:8080"

// Config is a configuration for a server. It contains all parameters that can
// be used to configure the operation of a Server.
type Config struct {
	// Listen is the address to listen on, in ADDRESS:PORT or :PORT form. If
	// not provided, DefaultListen is used.
	Listen string

	// VerbFile is the path to the verb table to resolve against. If not
	// provided, the built-in table is used.
	VerbFile string

	// Journal is the configuration for the journal store. If not provided,
	// nothing is journaled and the journal endpoint always gives HTTP-404.
	Journal nuventure.JournalConfig

	// Tagger tags input. If nil, a tagger.Lexicon is used.
	Tagger tagger.Tagger

	// CORSOrigins are the origins that may call the API from a browser. If
	// not provided, every origin may.
	CORSOrigins []string

	Logger *zap.Logger
}

// FillDefaults returns a new Config identitical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.Listen == "" {
		newCFG.Listen = DefaultListen
	}
	if newCFG.Journal.Type == "" {
		newCFG.Journal = nuventure.JournalConfig{Type: nuventure.JournalNone}
	}
	if len(newCFG.CORSOrigins) == 0 {
		newCFG.CORSOrigins = []string{"*"}
	}
	if newCFG.Logger == nil {
		newCFG.Logger = zap.NewNop()
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	_, portStr, err := net.SplitHostPort(cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen: not in ADDRESS:PORT or :PORT format: %q", cfg.Listen)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("listen: %q is not a valid port number", portStr)
	}

	if _, err := nuventure.ParseJournalType(cfg.Journal.Type.String()); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if cfg.Journal.Enabled() && cfg.Journal.Type != nuventure.JournalInMemory && cfg.Journal.Path == "" {
		return fmt.Errorf("journal: %s journal requires a path", cfg.Journal.Type)
	}

	if cfg.Logger == nil {
		return fmt.Errorf("logger: not set")
	}

	return nil
}
