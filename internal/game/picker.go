package game

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"example.com/rps-commit/internal/commit"
)

// Picker chooses the opponent move: a uniform index in [0,n).
type Picker interface {
	Pick(n int) (int, error)
}

// CryptoPicker samples from a secure random source (crypto/rand when Reader is nil).
type CryptoPicker struct {
	Reader io.Reader
}

func (p CryptoPicker) Pick(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("pick: n must be positive, got %d", n)
	}
	r := p.Reader
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: pick: %v", commit.ErrEntropyUnavailable, err)
	}
	return int(v.Int64()), nil
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) (int, error)

func (f PickerFunc) Pick(n int) (int, error) { return f(n) }
