package game

import "fmt"

// Outcome is the result of an actor move against an opponent move.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Draw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// Invert returns the outcome seen from the opponent's side.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	default:
		return o
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Win":
		*o = Win
	case "Lose":
		*o = Lose
	case "Draw":
		*o = Draw
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// Resolve compares actor against opponent by name.
func Resolve(c Catalog, actor, opponent string) (Outcome, error) {
	if !c.Valid() {
		return Draw, ErrInvalidCatalog
	}
	a, err := c.Index(actor)
	if err != nil {
		return Draw, err
	}
	b, err := c.Index(opponent)
	if err != nil {
		return Draw, err
	}
	return resolveIndex(c.Len(), a, b), nil
}

// ResolveIndex compares two 0-based catalog positions.
func (c Catalog) ResolveIndex(a, b int) (Outcome, error) {
	if !c.Valid() {
		return Draw, ErrInvalidCatalog
	}
	n := c.Len()
	if a < 0 || a >= n || b < 0 || b >= n {
		return Draw, fmt.Errorf("%w: index pair (%d,%d) out of range [0,%d)", ErrInvalidMove, a, b, n)
	}
	return resolveIndex(n, a, b), nil
}

// resolveIndex only looks at the forward circular distance from a to b, so
// the result is the same for every rotation of the catalog. A move loses to
// the n/2 moves listed after it and beats the n/2 listed before it, which
// gives the classic rules for "rock paper scissors" and
// "rock spock paper lizard scissors".
func resolveIndex(n, a, b int) Outcome {
	d := ((b-a)%n + n) % n
	switch {
	case d == 0:
		return Draw
	case d <= n/2:
		return Lose
	default:
		return Win
	}
}
