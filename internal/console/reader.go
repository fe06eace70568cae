package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"example.com/rps-commit/internal/game"
)

// MaxLineBytes bounds one answer. Longer lines are discarded up to their
// newline and reported as game.ErrLineTooLong.
const MaxLineBytes = 64 * 1024

type line struct {
	text string
	err  error
}

// LineReader reads newline-terminated answers from r. A single goroutine
// reads r so that ReadLine can give up on ctx without losing a line.
type LineReader struct {
	r     io.Reader
	once  sync.Once
	lines chan line
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: r, lines: make(chan line)}
}

// read loop; if ReadLine stops listening after a cancel this goroutine stays
// parked on the send until the process exits (one round per process).
func (l *LineReader) start() {
	go func() {
		defer close(l.lines)
		br := bufio.NewReaderSize(l.r, MaxLineBytes)
		for {
			b, more, err := br.ReadLine()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					l.lines <- line{err: err}
				}
				return
			}
			if !more {
				l.lines <- line{text: string(b)}
				continue
			}

			// drop the rest of the oversized line
			for more && err == nil {
				_, more, err = br.ReadLine()
			}
			l.lines <- line{err: game.ErrLineTooLong}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					l.lines <- line{err: err}
				}
				return
			}
		}
	}()
}

// ReadLine returns the next line without its line ending, io.EOF at end of
// input, game.ErrLineTooLong for a discarded oversized line, or ctx.Err() if
// ctx is done first.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(l.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case ln, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		return ln.text, ln.err
	}
}
