package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"example.com/rps-commit/internal/commit"
	"example.com/rps-commit/internal/game"
)

type verifyConfig struct {
	Key        string
	Move       string
	HMAC       string
	Alg        string
	Transcript string
}

func parseVerifyConfig(fs *flag.FlagSet, args []string) (verifyConfig, error) {
	cfg := verifyConfig{Alg: commit.DefaultAlg}
	fs.StringVar(&cfg.Key, "key", "", "revealed HMAC key (hex)")
	fs.StringVar(&cfg.Move, "move", "", "computer move as printed after the round")
	fs.StringVar(&cfg.HMAC, "hmac", "", "HMAC shown before the round (hex)")
	fs.StringVar(&cfg.Alg, "alg", cfg.Alg, "HMAC algorithm")
	fs.StringVar(&cfg.Transcript, "transcript", "", "JSON transcript file to check instead of -key/-move/-hmac (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return verifyConfig{}, err
	}
	if cfg.Transcript == "" && (cfg.Key == "" || cfg.Move == "" || cfg.HMAC == "") {
		return verifyConfig{}, errors.New("-key, -move and -hmac are required (or -transcript)")
	}
	return cfg, nil
}

// runVerify lets anyone re-check a finished round without trusting the game.
func runVerify(args []string, s stdio) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(s.err)
	cfg, err := parseVerifyConfig(fs, args)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(s.err, "verify: %v\n", err)
		}
		return exitUsage
	}

	if cfg.Transcript != "" {
		return verifyTranscript(cfg.Transcript, s)
	}

	e, err := commit.NewEngine(cfg.Alg)
	if err != nil {
		fmt.Fprintf(s.err, "verify: %v\n", err)
		return exitUsage
	}
	key, err := commit.ParseKey(cfg.Key)
	if err != nil {
		fmt.Fprintf(s.err, "verify: key: %v\n", err)
		return exitUsage
	}
	tag, err := commit.ParseTag(cfg.HMAC)
	if err != nil {
		fmt.Fprintf(s.err, "verify: hmac: %v\n", err)
		return exitUsage
	}

	if !e.Verify(key, cfg.Move, tag) {
		fmt.Fprintf(s.out, "MISMATCH: %s(key, %q) does not equal the published HMAC\n", e.Alg(), cfg.Move)
		return exitFailure
	}
	fmt.Fprintf(s.out, "OK: %s(key, %q) matches the published HMAC\n", e.Alg(), cfg.Move)
	return exitOK
}

func verifyTranscript(path string, s stdio) int {
	var r io.Reader = s.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(s.err, "verify: %v\n", err)
			return exitUsage
		}
		defer f.Close()
		r = f
	}

	var t game.Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		fmt.Fprintf(s.err, "verify: decode transcript: %v\n", err)
		return exitUsage
	}
	if err := t.Verify(); err != nil {
		fmt.Fprintf(s.out, "MISMATCH: session %s: %v\n", t.SessionID, err)
		return exitFailure
	}
	fmt.Fprintf(s.out, "OK: session %s, computer played %q, outcome %s\n", t.SessionID, t.ComputerMove, t.Outcome)
	return exitOK
}
