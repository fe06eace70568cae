package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"example.com/rps-commit/internal/app"
	"example.com/rps-commit/internal/config"
	"example.com/rps-commit/internal/game"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usageExample = "Example usage: game rock paper scissors"

type stdio struct {
	in       io.Reader
	out, err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], nil, stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

// run is main without the process: env == nil means the real environment.
func run(ctx context.Context, args []string, env map[string]string, s stdio) int {
	if len(args) > 0 && args[0] == "verify" {
		return runVerify(args[1:], s)
	}

	var cfg config.Config
	var err error
	if env == nil {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.LoadFromMap(env)
	}
	if err != nil {
		fmt.Fprintf(s.err, "config: %v\n", err)
		return exitFailure
	}

	log := newLogger(cfg, s.err)

	a, err := app.New(cfg, log, args, app.IO{In: s.in, Out: s.out}, app.Options{})
	if err != nil {
		if errors.Is(err, game.ErrInvalidCatalog) {
			fmt.Fprintln(s.err, "Incorrect number of arguments or repeating strings.")
			fmt.Fprintf(s.err, "%v\n", err)
			fmt.Fprintln(s.err, usageExample)
			return exitFailure
		}
		fmt.Fprintf(s.err, "startup: %v\n", err)
		return exitFailure
	}

	if _, err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			if err := a.Interrupted(); err != nil {
				log.Warn("exit notice not written", "err", err)
			}
			return exitOK
		}
		log.Error("session failed", "err", err)
		fmt.Fprintf(s.err, "session failed: %v\n", err)
		return exitFailure
	}
	return exitOK
}
