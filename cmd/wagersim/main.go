// Command wagersim is the CLI surface over the simulation core: a thin
// wrapper that parses subcommand flags, validates them, drives the
// appropriate package under internal/, and optionally exports results.
// No simulation logic lives here — every subcommand is a few lines of
// glue around internal/session, internal/venue, internal/tournament, and
// internal/analytics.
package main

import (
	"fmt"
	"os"

	"github.com/jstittsworth/continuum-wagersim/pkg/config"
	"github.com/jstittsworth/continuum-wagersim/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: wagersim [--config PATH] <player|venue|tournament|validate> [flags]")
		os.Exit(1)
	}

	args := os.Args[1:]
	configPath := ""
	if args[0] == "--config" {
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "--config requires a path and a subcommand")
			os.Exit(1)
		}
		configPath = args[1]
		args = args[2:]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.Development)

	switch args[0] {
	case "player":
		err = runPlayer(args[1:], cfg)
	case "venue":
		err = runVenue(args[1:], cfg)
	case "tournament":
		err = runTournament(args[1:])
	case "validate":
		err = runValidate(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", args[0])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
