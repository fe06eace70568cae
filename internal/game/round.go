package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"example.com/rps-commit/internal/commit"
)

var (
	ErrInputClosed = errors.New("input closed before a move was made")
	ErrLineTooLong = errors.New("input line too long")
)

// LineSource supplies the player's answers. ReadLine blocks until a line is
// available, the input ends (io.EOF) or ctx is done. A line too long to keep
// is reported as ErrLineTooLong and the source stays readable.
type LineSource interface {
	ReadLine(ctx context.Context) (string, error)
}

// Display receives everything the player is shown, in protocol order.
type Display interface {
	Commitment(p Prompt) error
	Menu(p Prompt) error
	Help(table [][]string) error
	Invalid(in Input) error
	Result(step Step, key commit.Key, t Transcript) error
	Exit() error
}

type RoundConfig struct {
	Catalog Catalog
	Engine  *commit.Engine
	Picker  Picker

	KeyReader io.Reader // nil => crypto/rand
	KeySize   int       // 0 => commit.MinKeySize

	Input   LineSource
	Display Display
	Log     *slog.Logger
}

type RoundResult struct {
	SessionID  string
	Exited     bool // player left (or input ended) before moving
	Step       Step
	Transcript Transcript
}

// PlayRound runs a single round: commit, prompt until a move or exit, resolve, reveal.
func PlayRound(ctx context.Context, cfg RoundConfig) (RoundResult, error) {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	keySize := cfg.KeySize
	if keySize == 0 {
		keySize = commit.MinKeySize
	}

	key, err := commit.NewKey(cfg.KeyReader, keySize)
	if err != nil {
		return RoundResult{}, fmt.Errorf("new session: %w", err)
	}
	s, err := NewSession(cfg.Catalog, key)
	if err != nil {
		return RoundResult{}, fmt.Errorf("new session: %w", err)
	}
	log = log.With("session_id", s.ID())

	s, err = s.Choose(cfg.Picker, cfg.Engine)
	if err != nil {
		return RoundResult{SessionID: s.ID()}, fmt.Errorf("choose move: %w", err)
	}
	log.Debug("opponent move committed", "alg", s.Commitment().Alg, "hmac", s.Commitment().Hex())

	res := RoundResult{SessionID: s.ID()}

	s, prompt, err := s.Await()
	if err != nil {
		return res, err
	}

	for {
		// the tag is on screen before any input is read
		if err := cfg.Display.Commitment(prompt); err != nil {
			return res, err
		}
		if err := cfg.Display.Menu(prompt); err != nil {
			return res, err
		}

		var in Input
		line, err := cfg.Input.ReadLine(ctx)
		switch {
		case err == nil:
			in = ParseInput(line, s.Catalog().Len())
		case errors.Is(err, ErrLineTooLong):
			log.Debug("oversized input line discarded")
			in = Input{Kind: InputInvalid}
		case errors.Is(err, io.EOF):
			res.Exited = true
			log.Info("input closed, session closed without reveal")
			return res, ErrInputClosed
		default:
			res.Exited = true
			log.Info("session cancelled without reveal", "err", err)
			return res, err
		}

		next, step, err := s.Apply(in)
		if err != nil {
			return res, err
		}
		s = next
		log.Debug("input applied", "kind", step.Input.Kind, "state", s.State())

		switch step.Input.Kind {
		case InputExit:
			res.Exited = true
			return res, cfg.Display.Exit()

		case InputHelp:
			if err := cfg.Display.Help(HelpTable(s.Catalog())); err != nil {
				return res, err
			}

		case InputInvalid:
			if err := cfg.Display.Invalid(step.Input); err != nil {
				return res, err
			}

		case InputMove:
			t, err := s.Transcript()
			if err != nil {
				return res, err
			}
			key, err := s.Reveal()
			if err != nil {
				return res, err
			}
			res.Step = step
			res.Transcript = t
			log.Info("round resolved", "player", step.PlayerMove, "computer", step.OpponentMove, "outcome", step.Outcome)

			if err := cfg.Display.Result(step, key, t); err != nil {
				return res, err
			}
			return res, nil
		}

		// same session, same commitment
		if s, prompt, err = s.Await(); err != nil {
			return res, err
		}
	}
}
