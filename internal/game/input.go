package game

import (
	"strconv"
	"strings"
)

type InputKind int

const (
	InputInvalid InputKind = iota
	InputMove
	InputExit
	InputHelp
)

func (k InputKind) String() string {
	switch k {
	case InputMove:
		return "move"
	case InputExit:
		return "exit"
	case InputHelp:
		return "help"
	default:
		return "invalid"
	}
}

const (
	ExitToken = "0"
	HelpToken = "?"
)

// Input is one parsed answer to the move prompt. Index is 1-based and only
// set for InputMove.
type Input struct {
	Kind  InputKind
	Index int
	Raw   string
}

// ParseInput classifies a prompt answer for a catalog of n moves. Anything
// that is not "0", "?" or a decimal in 1..n is invalid.
func ParseInput(text string, n int) Input {
	s := strings.TrimSpace(text)
	in := Input{Kind: InputInvalid, Raw: s}

	switch s {
	case HelpToken:
		in.Kind = InputHelp
		return in
	case "":
		return in
	}

	// strconv.Atoi accepts a sign; menu indices never carry one.
	if s[0] == '+' || s[0] == '-' {
		return in
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return in
	}
	switch {
	case v == 0:
		in.Kind = InputExit
	case v >= 1 && v <= n:
		in.Kind = InputMove
		in.Index = v
	}
	return in
}
