package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T, moves ...string) Catalog {
	t.Helper()
	c, err := NewCatalog(moves)
	require.NoError(t, err)
	return c
}

func TestNewCatalog_Validation(t *testing.T) {
	cases := []struct {
		name  string
		moves []string
		ok    bool
	}{
		{name: "empty", moves: []string{}, ok: false},
		{name: "nil", moves: nil, ok: false},
		{name: "one", moves: []string{"a"}, ok: false},
		{name: "two", moves: []string{"a", "b"}, ok: false},
		{name: "duplicate", moves: []string{"a", "a", "b"}, ok: false},
		{name: "even", moves: []string{"a", "b", "c", "d"}, ok: false},
		{name: "empty move", moves: []string{"a", "", "c"}, ok: false},
		{name: "whitespace move", moves: []string{"a", " ", "c"}, ok: true},
		{name: "leading space is distinct", moves: []string{"a", "b", " a"}, ok: true},
		{name: "normalization forms are distinct", moves: []string{"caf\u00e9", "cafe\u0301", "tea"}, ok: true},
		{name: "three", moves: []string{"a", "b", "c"}, ok: true},
		{name: "rpsls", moves: []string{"rock", "spock", "paper", "lizard", "scissors"}, ok: true},
		{name: "case sensitive", moves: []string{"Rock", "rock", "paper"}, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCatalog(tc.moves)
			if !tc.ok {
				require.ErrorIs(t, err, ErrInvalidCatalog)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tc.moves), c.Len())
			assert.True(t, c.Valid())
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := mustCatalog(t, "rock", "paper", "scissors")

	i, err := c.Index("paper")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	m, err := c.Move(2)
	require.NoError(t, err)
	assert.Equal(t, "scissors", m)

	_, err = c.Index("lizard")
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = c.Move(3)
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = c.Move(-1)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestCatalog_MovesIsACopy(t *testing.T) {
	c := mustCatalog(t, "rock", "paper", "scissors")
	moves := c.Moves()
	moves[0] = "stone"

	m, err := c.Move(0)
	require.NoError(t, err)
	assert.Equal(t, "rock", m)
}

func TestCatalog_ZeroValueIsInvalid(t *testing.T) {
	var c Catalog
	assert.False(t, c.Valid())
	_, err := Resolve(c, "a", "b")
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestCatalog_KeepsExactNames(t *testing.T) {
	c := mustCatalog(t, " a", "cafe\u0301", "b")
	assert.Equal(t, []string{" a", "cafe\u0301", "b"}, c.Moves())

	i, err := c.Index(" a")
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	_, err = c.Index("a")
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestCatalog_IndexFallsBackToNFC(t *testing.T) {
	c := mustCatalog(t, "\u00c5ngstr\u00f6m", "b", "c")
	i, err := c.Index("\u212bngstr\u00f6m")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = c.Index("A\u030angstro\u0308m")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	// two names with the same NFC form: only exact lookups resolve
	amb := mustCatalog(t, "\u00c5", "A\u030a", "x")
	i, err = amb.Index("A\u030a")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	_, err = amb.Index("\u212b")
	assert.ErrorIs(t, err, ErrInvalidMove)
}
