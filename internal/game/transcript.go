package game

import (
	"errors"
	"fmt"

	"example.com/rps-commit/internal/commit"
)

var ErrCommitmentMismatch = errors.New("commitment does not match revealed key and move")

// Transcript is the serializable record of a resolved round. Everything a
// third party needs to re-check the computer's commitment is in it.
type Transcript struct {
	SessionID    string   `json:"sessionId"`
	Moves        []string `json:"moves"`
	Alg          string   `json:"alg"`
	HMAC         string   `json:"hmac"`
	PlayerMove   string   `json:"playerMove"`
	ComputerMove string   `json:"computerMove"`
	Outcome      Outcome  `json:"outcome"` // from the player's side
	Key          string   `json:"key"`
}

func (s Session) Transcript() (Transcript, error) {
	key, err := s.Reveal()
	if err != nil {
		return Transcript{}, err
	}
	player, _ := s.catalog.Move(s.player)
	computer, _ := s.catalog.Move(s.opponent)

	return Transcript{
		SessionID:    s.id,
		Moves:        s.catalog.Moves(),
		Alg:          s.commitment.Alg,
		HMAC:         s.commitment.Hex(),
		PlayerMove:   player,
		ComputerMove: computer,
		Outcome:      s.outcome,
		Key:          key.Hex(),
	}, nil
}

// Verify re-checks the commitment and the recorded outcome.
func (t Transcript) Verify() error {
	e, err := commit.NewEngine(t.Alg)
	if err != nil {
		return err
	}
	key, err := commit.ParseKey(t.Key)
	if err != nil {
		return fmt.Errorf("transcript key: %w", err)
	}
	tag, err := commit.ParseTag(t.HMAC)
	if err != nil {
		return fmt.Errorf("transcript hmac: %w", err)
	}
	if !e.Verify(key, t.ComputerMove, tag) {
		return ErrCommitmentMismatch
	}

	c, err := NewCatalog(t.Moves)
	if err != nil {
		return err
	}
	out, err := Resolve(c, t.PlayerMove, t.ComputerMove)
	if err != nil {
		return err
	}
	if out != t.Outcome {
		return fmt.Errorf("transcript outcome %s, recomputed %s", t.Outcome, out)
	}
	return nil
}
