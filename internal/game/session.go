package game

import (
	"errors"
	"fmt"

	"example.com/rps-commit/internal/commit"
	"github.com/google/uuid"
)

type State string

const (
	StateCreated       State = "created"
	StateMoveChosen    State = "move_chosen"
	StateAwaitingInput State = "awaiting_input"
	StateResolved      State = "resolved"
	StateClosed        State = "closed"
)

var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrKeyNotRevealable  = errors.New("key can only be revealed after the round is resolved")
)

// Session is one round against the computer. It is a value: every
// transition returns a new Session and leaves the receiver untouched.
//
// Once the opponent move is chosen, the move and its commitment never change
// for the rest of the session, however many times the player is re-prompted.
type Session struct {
	id      string
	state   State
	catalog Catalog
	key     commit.Key

	opponent   int // 0-based, -1 until chosen
	commitment commit.Commitment

	player  int // 0-based, -1 until resolved
	outcome Outcome
}

// Prompt is what the player sees before answering: the commitment and the menu.
type Prompt struct {
	SessionID  string
	Commitment commit.Commitment
	Moves      []string
}

// Step describes the effect of one applied input.
type Step struct {
	Input Input

	// Set when Input.Kind == InputMove.
	PlayerMove   string
	OpponentMove string
	Outcome      Outcome
}

func NewSession(c Catalog, key commit.Key) (Session, error) {
	if !c.Valid() {
		return Session{}, ErrInvalidCatalog
	}
	if len(key) < commit.MinKeySize {
		return Session{}, commit.ErrKeyTooShort
	}
	return Session{
		id:       uuid.NewString(),
		state:    StateCreated,
		catalog:  c,
		key:      commit.Reveal(key), // own copy
		opponent: -1,
		player:   -1,
	}, nil
}

func (s Session) ID() string { return s.id }
func (s Session) State() State { return s.state }
func (s Session) Catalog() Catalog { return s.catalog }
func (s Session) Outcome() Outcome { return s.outcome }
func (s Session) Commitment() commit.Commitment { return s.commitment }

// Choose picks the opponent move and commits to it.
func (s Session) Choose(p Picker, e *commit.Engine) (Session, error) {
	if s.state != StateCreated {
		return s, fmt.Errorf("%w: choose from %s", ErrInvalidTransition, s.state)
	}

	n := s.catalog.Len()
	idx, err := p.Pick(n)
	if err != nil {
		return s, err
	}
	move, err := s.catalog.Move(idx)
	if err != nil {
		return s, fmt.Errorf("picker returned %d for %d moves: %w", idx, n, err)
	}

	c, err := e.Commit(s.key, move)
	if err != nil {
		return s, err
	}

	s.opponent = idx
	s.commitment = c
	s.state = StateMoveChosen
	return s, nil
}

// Await opens the input phase. It may be called again while awaiting input
// to re-display the same prompt.
func (s Session) Await() (Session, Prompt, error) {
	if s.state != StateMoveChosen && s.state != StateAwaitingInput {
		return s, Prompt{}, fmt.Errorf("%w: await from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateAwaitingInput
	return s, s.prompt(), nil
}

func (s Session) prompt() Prompt {
	return Prompt{
		SessionID:  s.id,
		Commitment: s.commitment,
		Moves:      s.catalog.Moves(),
	}
}

// Apply feeds one player input to a session awaiting input.
func (s Session) Apply(in Input) (Session, Step, error) {
	step := Step{Input: in}
	if s.state != StateAwaitingInput {
		return s, step, fmt.Errorf("%w: input in %s", ErrInvalidTransition, s.state)
	}

	switch in.Kind {
	case InputExit:
		return s.Close(), step, nil

	case InputMove:
		player := in.Index - 1
		out, err := s.catalog.ResolveIndex(player, s.opponent)
		if err != nil {
			// ParseInput bounds the index, so this only happens for hand-built input.
			step.Input.Kind = InputInvalid
			return s, step, nil
		}
		s.player = player
		s.outcome = out
		s.state = StateResolved

		step.PlayerMove, _ = s.catalog.Move(player)
		step.OpponentMove, _ = s.catalog.Move(s.opponent)
		step.Outcome = out
		return s, step, nil

	default:
		// help and invalid input leave the session as it is
		return s, step, nil
	}
}

// Reveal discloses the key. Only allowed once the player's move is fixed.
func (s Session) Reveal() (commit.Key, error) {
	if s.state != StateResolved {
		return nil, ErrKeyNotRevealable
	}
	return commit.Reveal(s.key), nil
}

// Close ends the session and drops the key.
func (s Session) Close() Session {
	s.state = StateClosed
	s.key = nil
	return s
}
