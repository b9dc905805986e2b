/*
Nvi starts an interactive Nuventure session.

It loads a world and a verb table and starts the game in the world's starting
room. The interpreter will then start printing what is happening in the game to
stdout and will read user input from stdin until the game is over or the "quit"
command is input.

Usage:

	nvi [flags]

The flags are:

	-v, --version
		Give the current version of Nuventure and then exit.

	-w, --world FILE
		Use the provided TOML file for the world. If not given, will default to
		the value of environment variable NUVENTURE_WORLD, and if that is not
		given, the built-in world is used.

	--verbs FILE
		Use the provided JSON, TOML, or YAML verb table. If not given, will
		default to the value of environment variable NUVENTURE_VERBS, and if
		that is not given, the built-in table is used.

	-d, --direct
		Force reading directly from the console as opposed to using GNU readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

	--tagger NAME
		Use the named part-of-speech tagger for reading input. NAME is either
		"lexicon" (the default) or "prose".

	--journal DRIVER[:PATH]
		Record every command to a journal. DRIVER must be one of inmem, sqlite,
		or bolt; sqlite and bolt need the path to the journal file, such as
		sqlite:nuventure.db. If not given, will default to the value of
		environment variable NUVENTURE_JOURNAL. If that is not given either, no
		journal is kept.

	--debug
		Log resolution details to stderr.

	--commands
		Print a table of every command in the verb table with its help text
		and then exit.

Once a session has started, the user input will be parsed for Nuventure
commands. For an explanation of the commands, type "help" once in a session. To
exit the interpreter, type "quit".
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
	"github.com/tnwae/nuventure/internal/journal"
	"github.com/tnwae/nuventure/internal/version"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the game.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

const (
	EnvWorld   = "NUVENTURE_WORLD"
	EnvVerbs   = "NUVENTURE_VERBS"
	EnvJournal = "NUVENTURE_JOURNAL"
)

var (
	returnCode = ExitSuccess

	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of Nuventure and then exit.")
	flagWorld    = pflag.StringP("world", "w", "", "Use the given TOML world file instead of the built-in world.")
	flagVerbs    = pflag.String("verbs", "", "Use the given verb table instead of the built-in one.")
	flagDirect   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagTagger   = pflag.String("tagger", nuventure.TaggerLexicon, "Use the named part-of-speech tagger: lexicon or prose.")
	flagJournal  = pflag.String("journal", "", "Record commands to the given journal, as DRIVER[:PATH].")
	flagDebug    = pflag.Bool("debug", false, "Log resolution details to stderr.")
	flagCommands = pflag.Bool("commands", false, "Print every command with its help text and then exit.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if *flagDebug {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not initialize logger: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer log.Sync()

	opts := nuventure.Options{
		WorldFile:   envOrFlag(EnvWorld, "world", *flagWorld),
		VerbFile:    envOrFlag(EnvVerbs, "verbs", *flagVerbs),
		ForceDirect: *flagDirect,
		Logger:      log,
	}

	opts.Tagger, err = nuventure.NewTagger(*flagTagger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", err.Error())
		returnCode = ExitInitError
		return
	}

	journalCfg, err := nuventure.ParseJournalDSN(envOrFlag(EnvJournal, "journal", *flagJournal))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if journalCfg.Enabled() {
		var store journal.Store
		store, err = journalCfg.Connect()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer store.Close()
		opts.Journal = store
	}

	gameEng, initErr := nuventure.New(os.Stdin, os.Stdout, opts)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	if *flagCommands {
		fmt.Println(gameEng.Commands())
		return
	}

	log.Debug("session started", zap.Stringer("session", gameEng.Session()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = gameEng.RunUntilQuit(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
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
