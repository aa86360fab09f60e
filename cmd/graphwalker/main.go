// Command graphwalker converts a model document between wire formats, runs an
// offline walk to completion, or serves an online session over HTTP. Uses a
// flag-parse -> log -> run -> graceful-shutdown shape, split into three
// flag.NewFlagSet subcommands rather than a cobra-style tree.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// exSoftware is the EX_SOFTWARE exit code for an engine failure, rather than
// a generic exit(1).
const exSoftware = 70

func main() {
	log := newLogger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(exSoftware)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(log, os.Args[2:])
	case "offline":
		err = runOffline(log, os.Args[2:])
	case "online":
		err = runOnline(log, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(exSoftware)
	}

	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(exSoftware)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `graphwalker - deterministic model-based test path generation

Usage:
  graphwalker convert <INPUT> --format {json|dot}
  graphwalker offline <INPUT> [--seed N]
  graphwalker online <INPUT> [--seed N] [--port N] [--token-secret S]`)
}

// newLogger builds the CLI's zerolog.Logger, honoring GRAPHWALKER_LOG_LEVEL.
// The core engine itself reads no environment variables - only this
// command's own lifecycle logging does.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("GRAPHWALKER_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
