package console

import (
	"fmt"
	"io"

	"example.com/rps-commit/internal/commit"
	"example.com/rps-commit/internal/game"
)

// TextDisplay prints the round for a human at a terminal.
type TextDisplay struct {
	w io.Writer
}

func NewTextDisplay(w io.Writer) *TextDisplay {
	return &TextDisplay{w: w}
}

func (d *TextDisplay) Commitment(p game.Prompt) error {
	_, err := fmt.Fprintf(d.w, "HMAC: %s\n", p.Commitment.Hex())
	return err
}

func (d *TextDisplay) Menu(p game.Prompt) error {
	ew := &errWriter{w: d.w}
	ew.printf("Available moves:\n")
	for i, m := range p.Moves {
		ew.printf("%d - %s\n", i+1, m)
	}
	ew.printf("%s - Exit\n", game.ExitToken)
	ew.printf("%s - Help\n", game.HelpToken)
	ew.printf("Enter your move: ")
	return ew.err
}

func (d *TextDisplay) Help(table [][]string) error {
	_, err := fmt.Fprintf(d.w, "\nHelp Table:\n%s\n", game.FormatTable(table))
	return err
}

func (d *TextDisplay) Invalid(game.Input) error {
	_, err := fmt.Fprintln(d.w, "Invalid move. Please try again.")
	return err
}

func (d *TextDisplay) Result(step game.Step, key commit.Key, _ game.Transcript) error {
	ew := &errWriter{w: d.w}
	ew.printf("Your move: %s\n", step.PlayerMove)
	ew.printf("Computer move: %s\n", step.OpponentMove)
	ew.printf("%s\n", verdict(step.Outcome))
	ew.printf("HMAC key: %s\n", key.Hex())
	return ew.err
}

func (d *TextDisplay) Exit() error {
	_, err := fmt.Fprintln(d.w, "Exiting the game.")
	return err
}

func verdict(o game.Outcome) string {
	switch o {
	case game.Win:
		return "You win!"
	case game.Lose:
		return "You lose!"
	default:
		return "It's a draw!"
	}
}

// errWriter keeps the first write error and skips the rest.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
