package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"example.com/rps-commit/internal/commit"
	"example.com/rps-commit/internal/config"
	"example.com/rps-commit/internal/console"
	"example.com/rps-commit/internal/game"
)

type App struct {
	cfg config.Config
	log *slog.Logger
	out io.Writer

	round game.RoundConfig
}

type IO struct {
	In  io.Reader
	Out io.Writer
}

// Options override the secure defaults; tests use them to force the opponent move.
type Options struct {
	Picker    game.Picker // optional; defaults to game.CryptoPicker
	KeyReader io.Reader   // optional; defaults to crypto/rand
}

// New validates the move catalog and prepares a single round. Catalog errors
// wrap game.ErrInvalidCatalog.
func New(cfg config.Config, log *slog.Logger, moves []string, stdio IO, opts Options) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	catalog, err := game.NewCatalog(moves)
	if err != nil {
		return nil, err
	}

	engine, err := commit.NewEngine(cfg.Commit.Alg)
	if err != nil {
		return nil, fmt.Errorf("commitment engine: %w", err)
	}

	picker := opts.Picker
	if picker == nil {
		picker = game.CryptoPicker{}
	}

	var display game.Display
	switch cfg.Output.Format {
	case "json":
		display = console.NewJSONDisplay(stdio.Out)
	default:
		display = console.NewTextDisplay(stdio.Out)
	}

	return &App{
		cfg: cfg,
		log: log,
		out: stdio.Out,
		round: game.RoundConfig{
			Catalog:   catalog,
			Engine:    engine,
			Picker:    picker,
			KeyReader: opts.KeyReader,
			KeySize:   cfg.Commit.KeyBytes,
			Input:     console.NewLineReader(stdio.In),
			Display:   display,
			Log:       log,
		},
	}, nil
}

// Run plays one round. It returns when the round resolves, the player exits,
// input ends, or ctx is cancelled (in which case nothing is revealed).
func (a *App) Run(ctx context.Context) (game.RoundResult, error) {
	roundCtx, done := context.WithCancel(ctx)
	defer done()

	g, gctx := errgroup.WithContext(roundCtx)
	var res game.RoundResult

	a.log.Info("session starting", "moves", a.round.Catalog.Len(), "alg", a.round.Engine.Alg())

	g.Go(func() error {
		defer done()
		var err error
		res, err = game.PlayRound(gctx, a.round)
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		if err := ctx.Err(); err != nil {
			a.log.Warn("session interrupted, key not revealed", "err", err)
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, game.ErrInputClosed) {
		// end of input counts as leaving the game
		return res, nil
	}
	return res, err
}

// Interrupted tells the player the round was abandoned, in the configured
// output format.
func (a *App) Interrupted() error {
	if a.cfg.Output.Format != "json" {
		// finish the pending "Enter your move: " line
		if _, err := fmt.Fprintln(a.out); err != nil {
			return err
		}
	}
	return a.round.Display.Exit()
}
