package game

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidCatalog = errors.New("invalid move catalog")
	ErrInvalidMove    = errors.New("move is not in the catalog")
)

// Catalog is the ordered set of moves for a session. Dominance is circular:
// see resolveIndex.
//
// Names are kept byte for byte as given; they are what gets committed to and
// displayed. nfc maps the NFC form of each name back to its index so lookups
// tolerate a different Unicode normalization, as long as that is unambiguous.
type Catalog struct {
	moves []string
	index map[string]int
	nfc   map[string]int // -1 when two names share a form
}

// NewCatalog validates moves: odd count, at least 3, no empty or duplicate
// names. Names are compared exactly.
func NewCatalog(moves []string) (Catalog, error) {
	n := len(moves)
	if n < 3 {
		return Catalog{}, fmt.Errorf("%w: need at least 3 moves, got %d", ErrInvalidCatalog, n)
	}
	if n%2 == 0 {
		return Catalog{}, fmt.Errorf("%w: need an odd number of moves, got %d", ErrInvalidCatalog, n)
	}

	c := Catalog{
		moves: make([]string, 0, n),
		index: make(map[string]int, n),
		nfc:   make(map[string]int, n),
	}
	for i, m := range moves {
		if m == "" {
			return Catalog{}, fmt.Errorf("%w: move #%d is empty", ErrInvalidCatalog, i+1)
		}
		if j, dup := c.index[m]; dup {
			return Catalog{}, fmt.Errorf("%w: %q repeats move #%d", ErrInvalidCatalog, m, j+1)
		}
		c.index[m] = i
		c.moves = append(c.moves, m)

		key := norm.NFC.String(m)
		if _, seen := c.nfc[key]; seen {
			c.nfc[key] = -1
		} else {
			c.nfc[key] = i
		}
	}
	return c, nil
}

func (c Catalog) Len() int {
	return len(c.moves)
}

func (c Catalog) Valid() bool {
	return len(c.moves) >= 3 && len(c.moves)%2 == 1
}

// Moves returns a copy of the ordered move names.
func (c Catalog) Moves() []string {
	return append([]string(nil), c.moves...)
}

// Move returns the name at 0-based index i.
func (c Catalog) Move(i int) (string, error) {
	if i < 0 || i >= len(c.moves) {
		return "", fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidMove, i, len(c.moves))
	}
	return c.moves[i], nil
}

// Index returns the 0-based position of move. An exact match wins; otherwise
// the NFC form is tried.
func (c Catalog) Index(move string) (int, error) {
	if i, ok := c.index[move]; ok {
		return i, nil
	}
	if i, ok := c.nfc[norm.NFC.String(move)]; ok && i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrInvalidMove, move)
}
