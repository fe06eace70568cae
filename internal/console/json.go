package console

import (
	"encoding/json"
	"io"

	"example.com/rps-commit/internal/commit"
	"example.com/rps-commit/internal/game"
)

// JSONDisplay writes one game.Envelope per line, for scripts and verifiers.
type JSONDisplay struct {
	enc *json.Encoder
}

func NewJSONDisplay(w io.Writer) *JSONDisplay {
	return &JSONDisplay{enc: json.NewEncoder(w)}
}

func (d *JSONDisplay) send(typ string, payload any) error {
	env, err := game.NewEnvelope(typ, payload)
	if err != nil {
		return err
	}
	return d.enc.Encode(env)
}

func (d *JSONDisplay) Commitment(p game.Prompt) error {
	return d.send(game.EventCommitment, game.CommitmentPayload{
		SessionID: p.SessionID,
		Alg:       p.Commitment.Alg,
		HMAC:      p.Commitment.Hex(),
	})
}

func (d *JSONDisplay) Menu(p game.Prompt) error {
	return d.send(game.EventMenu, game.MenuFor(p))
}

func (d *JSONDisplay) Help(table [][]string) error {
	return d.send(game.EventHelp, game.HelpPayload{Table: table})
}

func (d *JSONDisplay) Invalid(in game.Input) error {
	return d.send(game.EventInvalidInput, game.InvalidInputPayload{
		Input:   in.Raw,
		Message: "invalid move, try again",
	})
}

func (d *JSONDisplay) Result(step game.Step, key commit.Key, t game.Transcript) error {
	return d.send(game.EventResult, game.ResultPayload{
		PlayerMove:   step.PlayerMove,
		ComputerMove: step.OpponentMove,
		Outcome:      step.Outcome,
		Key:          key.Hex(),
		Transcript:   t,
	})
}

func (d *JSONDisplay) Exit() error {
	return d.send(game.EventExit, struct{}{})
}
