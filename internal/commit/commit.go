package commit

import (
	"crypto/rand"
	"crypto/sha256"
	_ "crypto/sha512" // HS384, HS512
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeySize is the smallest accepted key, in bytes (256 bits).
const MinKeySize = sha256.Size

// DefaultAlg is the HMAC-SHA256 identifier used for move commitments.
const DefaultAlg = "HS256"

var (
	ErrEntropyUnavailable   = errors.New("secure random source unavailable")
	ErrKeyTooShort          = fmt.Errorf("key must be at least %d bytes", MinKeySize)
	ErrEmptyKey             = errors.New("key is empty")
	ErrUnsupportedAlgorithm = errors.New("unsupported commitment algorithm")
	ErrMalformedHex         = errors.New("malformed hex value")
)

// Key is the per-session secret. It is only shown to the player after the round is resolved.
type Key []byte

func (k Key) Hex() string {
	return hex.EncodeToString(k)
}

// Commitment is the tag published before the player moves.
type Commitment struct {
	Tag []byte
	Alg string
}

func (c Commitment) Hex() string {
	return hex.EncodeToString(c.Tag)
}

func (c Commitment) Equal(o Commitment) bool {
	return c.Alg == o.Alg && string(c.Tag) == string(o.Tag)
}

// NewKey reads size bytes from r. A nil reader means crypto/rand.
func NewKey(r io.Reader, size int) (Key, error) {
	if size < MinKeySize {
		return nil, ErrKeyTooShort
	}
	if r == nil {
		r = rand.Reader
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return Key(buf), nil
}

// Reveal hands out a copy of the key so later mutation by the caller cannot
// affect the session that owns it.
func Reveal(k Key) Key {
	return append(Key(nil), k...)
}

func ParseKey(s string) (Key, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrEmptyKey
	}
	return Key(b), nil
}

func ParseTag(s string) ([]byte, error) {
	return decodeHex(s)
}

func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return b, nil
}

// Engine computes and checks HMAC commitments for one algorithm.
type Engine struct {
	method *jwt.SigningMethodHMAC
}

// NewEngine resolves alg through the jwt signing-method registry.
// Only the HMAC family (HS256, HS384, HS512) is accepted.
func NewEngine(alg string) (*Engine, error) {
	if alg == "" {
		alg = DefaultAlg
	}
	m, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	if !m.Hash.Available() {
		return nil, fmt.Errorf("%w: %q hash not linked", ErrUnsupportedAlgorithm, alg)
	}
	return &Engine{method: m}, nil
}

func (e *Engine) Alg() string {
	return e.method.Alg()
}

// TagSize is the tag length in bytes.
func (e *Engine) TagSize() int {
	return e.method.Hash.Size()
}

func (e *Engine) Commit(key Key, move string) (Commitment, error) {
	if len(key) == 0 {
		return Commitment{}, ErrEmptyKey
	}
	tag, err := e.method.Sign(move, []byte(key))
	if err != nil {
		return Commitment{}, fmt.Errorf("commit: %w", err)
	}
	return Commitment{Tag: tag, Alg: e.method.Alg()}, nil
}

// Verify recomputes the tag for move and compares it in constant time.
func (e *Engine) Verify(key Key, move string, tag []byte) bool {
	if len(key) == 0 || len(tag) != e.TagSize() {
		return false
	}
	return e.method.Verify(move, tag, []byte(key)) == nil
}
