/*
Nvserver starts a Nuventure resolve server and begins listening for new
connections.

Usage:

	nvserver [flags]
	nvserver [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using REST protocol. By default, it will listen on localhost:8080. This can be
changed with the --listen/-l flag (or config via environment var). The flag
argument must be either a full address with port, such as "192.168.0.2:6001", or
just the port preceeded by a colon, such as ":6001".

The flags are:

	-v, --version
		Give the current version of the Nuventure server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		NUVENTURE_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	--verbs FILE
		Resolve against the given JSON, TOML, or YAML verb table. If not given,
		will default to the value of environment variable NUVENTURE_VERBS, and
		if that is not given, the built-in table is used.

	--journal DRIVER[:PATH]
		Record every resolved line to a journal. DRIVER must be one of inmem,
		sqlite, or bolt; sqlite and bolt need the path to the journal file. If
		not given, will default to the value of environment variable
		NUVENTURE_JOURNAL. If that is not given either, no journal is kept.

	--tagger NAME
		Use the named part-of-speech tagger: "lexicon" (the default) or
		"prose".

	--cors ORIGIN
		Allow browser requests from the given origin. May be given more than
		once. If not given, every origin is allowed.

	--debug
		Log resolution details.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/tnwae/nuventure"
	"github.com/tnwae/nuventure/internal/version"
	"github.com/tnwae/nuventure/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvListen  = "NUVENTURE_LISTEN_ADDRESS"
	EnvVerbs   = "NUVENTURE_VERBS"
	EnvJournal = "NUVENTURE_JOURNAL"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of Nuventure server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagVerbs   = pflag.String("verbs", "", "Resolve against the given verb table instead of the built-in one.")
	flagJournal = pflag.String("journal", "", "Record resolved lines to the given journal, as DRIVER[:PATH].")
	flagTagger  = pflag.String("tagger", nuventure.TaggerLexicon, "Use the named part-of-speech tagger: lexicon or prose.")
	flagCORS    = pflag.StringArray("cors", nil, "Allow browser requests from the given origin.")
	flagDebug   = pflag.Bool("debug", false, "Log resolution details.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (Nuventure v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	logCfg := zap.NewProductionConfig()
	if *flagDebug {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not initialize logger: %s\n", err.Error())
		os.Exit(1)
	}
	defer log.Sync()

	// assemble a server config
	cfg := server.Config{
		Listen:      envOrFlag(EnvListen, "listen", *flagListen),
		VerbFile:    envOrFlag(EnvVerbs, "verbs", *flagVerbs),
		CORSOrigins: *flagCORS,
		Logger:      log,
	}

	cfg.Journal, err = nuventure.ParseJournalDSN(envOrFlag(EnvJournal, "journal", *flagJournal))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	cfg.Tagger, err = nuventure.NewTagger(*flagTagger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	// configuration complete, initialize the server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal("could not start server", zap.Error(err))
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// okay, now actually launch it
	log.Info("starting Nuventure server", zap.String("version", version.ServerCurrent))
	if err := srv.ServeForever(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		srv.Close()
		log.Sync()
		os.Exit(2)
	}
}

// envOrFlag gives the value of the named flag if it was set on the command
// line, and otherwise the value of the environment variable.
func envOrFlag(env, flagName, flagVal string) string {
	if pflag.Lookup(flagName).Changed {
		return flagVal
	}
	return os.Getenv(env)
}
