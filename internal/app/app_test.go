package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/rps-commit/internal/commit"
	"example.com/rps-commit/internal/config"
	"example.com/rps-commit/internal/game"
)

func testConfig(t *testing.T, vars map[string]string) config.Config {
	t.Helper()
	c, err := config.LoadFromMap(vars)
	require.NoError(t, err)
	return c
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// always picks the last move
var lastMove = game.PickerFunc(func(n int) (int, error) { return n - 1, nil })

func TestApp_TextRound(t *testing.T) {
	var out bytes.Buffer
	a, err := New(testConfig(t, nil), quietLogger(), []string{"rock", "paper", "scissors"},
		IO{In: strings.NewReader("?\nnope\n1\n"), Out: &out}, Options{Picker: lastMove})
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Exited)
	assert.Equal(t, game.Win, res.Step.Outcome)
	assert.Equal(t, "scissors", res.Transcript.ComputerMove)
	require.NoError(t, res.Transcript.Verify())

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "HMAC: "+res.Transcript.HMAC+"\n"))
	assert.Contains(t, text, "Help Table:")
	assert.Contains(t, text, "Invalid move. Please try again.")
	assert.Contains(t, text, "You win!\n")
	assert.Contains(t, text, "HMAC key: "+res.Transcript.Key+"\n")
	assert.Less(t, strings.Index(text, "HMAC: "), strings.Index(text, "Enter your move"))
}

func TestApp_JSONRound(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(t, map[string]string{"OUTPUT_FORMAT": "json", "COMMIT_ALG": "HS384", "COMMIT_KEY_BYTES": "48"})
	a, err := New(cfg, quietLogger(), []string{"rock", "paper", "scissors"},
		IO{In: strings.NewReader("2\n"), Out: &out}, Options{Picker: lastMove})
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Lose, res.Step.Outcome)
	assert.Equal(t, "HS384", res.Transcript.Alg)
	assert.Len(t, res.Transcript.Key, 96)

	dec := json.NewDecoder(&out)
	var types []string
	for dec.More() {
		var env game.Envelope
		require.NoError(t, dec.Decode(&env))
		types = append(types, env.Type)
	}
	assert.Equal(t, []string{game.EventCommitment, game.EventMenu, game.EventResult}, types)
}

func TestApp_OversizedLineThenMove(t *testing.T) {
	var out bytes.Buffer
	in := strings.Repeat("x", 70*1024) + "\n1\n"
	a, err := New(testConfig(t, nil), quietLogger(), []string{"rock", "paper", "scissors"},
		IO{In: strings.NewReader(in), Out: &out}, Options{Picker: lastMove})
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Exited)
	assert.Equal(t, game.Win, res.Step.Outcome)

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "Invalid move. Please try again."))
	assert.Equal(t, 2, strings.Count(text, "HMAC: "+res.Transcript.HMAC+"\n"))
	assert.Contains(t, text, "HMAC key: "+res.Transcript.Key)
}

func TestApp_ExitAndEOF(t *testing.T) {
	for name, input := range map[string]string{"exit": "0\n", "eof": ""} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			a, err := New(testConfig(t, nil), quietLogger(), []string{"a", "b", "c"},
				IO{In: strings.NewReader(input), Out: &out}, Options{})
			require.NoError(t, err)

			res, err := a.Run(context.Background())
			require.NoError(t, err)
			assert.True(t, res.Exited)
			assert.NotContains(t, out.String(), "HMAC key:")
		})
	}
}

func TestApp_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	a, err := New(testConfig(t, nil), quietLogger(), []string{"a", "b", "c"},
		IO{In: pr, Out: &out}, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Transcript.Key)

	require.NoError(t, a.Interrupted())
	assert.True(t, strings.HasSuffix(out.String(), "Enter your move: \nExiting the game.\n"))
}

func TestApp_InterruptedJSON(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig(t, map[string]string{"OUTPUT_FORMAT": "json"})
	a, err := New(cfg, quietLogger(), []string{"a", "b", "c"}, IO{In: strings.NewReader(""), Out: &out}, Options{})
	require.NoError(t, err)

	require.NoError(t, a.Interrupted())
	var env game.Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, game.EventExit, env.Type)
}

func TestApp_New_Errors(t *testing.T) {
	_, err := New(testConfig(t, nil), nil, []string{"a", "a", "b"}, IO{}, Options{})
	assert.ErrorIs(t, err, game.ErrInvalidCatalog)

	_, err = New(testConfig(t, nil), nil, []string{"a", "b"}, IO{}, Options{})
	assert.ErrorIs(t, err, game.ErrInvalidCatalog)

	cfg := testConfig(t, nil)
	cfg.Commit.Alg = "none"
	_, err = New(cfg, nil, []string{"a", "b", "c"}, IO{}, Options{})
	assert.ErrorIs(t, err, commit.ErrUnsupportedAlgorithm)
}

func TestApp_EntropyFailure(t *testing.T) {
	a, err := New(testConfig(t, nil), quietLogger(), []string{"a", "b", "c"},
		IO{In: strings.NewReader("1\n"), Out: io.Discard}, Options{KeyReader: bytes.NewReader(nil)})
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	assert.ErrorIs(t, err, commit.ErrEntropyUnavailable)
}
