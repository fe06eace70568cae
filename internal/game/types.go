package game

import "encoding/json"

// Envelope is the machine-readable event: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

const (
	EventCommitment   = "commitment"
	EventMenu         = "menu"
	EventHelp         = "help"
	EventInvalidInput = "invalid_input"
	EventResult       = "result"
	EventExit         = "exit"
)

type CommitmentPayload struct {
	SessionID string `json:"sessionId"`
	Alg       string `json:"alg"`
	HMAC      string `json:"hmac"`
}

type MenuItem struct {
	Index int    `json:"index"` // 1-based
	Move  string `json:"move"`
}

type MenuPayload struct {
	HMAC  string     `json:"hmac"` // repeated on every prompt; never changes within a session
	Moves []MenuItem `json:"moves"`
	Exit  string     `json:"exit"`
	Help  string     `json:"help"`
}

type HelpPayload struct {
	Table [][]string `json:"table"`
}

type InvalidInputPayload struct {
	Input   string `json:"input"`
	Message string `json:"message"`
}

type ResultPayload struct {
	PlayerMove   string     `json:"playerMove"`
	ComputerMove string     `json:"computerMove"`
	Outcome      Outcome    `json:"outcome"`
	Key          string     `json:"key"`
	Transcript   Transcript `json:"transcript"`
}

func NewEnvelope(typ string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: b}, nil
}

func MenuFor(p Prompt) MenuPayload {
	items := make([]MenuItem, len(p.Moves))
	for i, m := range p.Moves {
		items[i] = MenuItem{Index: i + 1, Move: m}
	}
	return MenuPayload{
		HMAC:  p.Commitment.Hex(),
		Moves: items,
		Exit:  ExitToken,
		Help:  HelpToken,
	}
}
