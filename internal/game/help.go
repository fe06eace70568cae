package game

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HelpTable builds the (N+1)x(N+1) outcome grid. Row i, column j holds the
// result of moves[i] played against moves[j]; headers are the moves' first
// letters, uppercased.
func HelpTable(c Catalog) [][]string {
	moves := c.Moves()
	n := len(moves)

	grid := make([][]string, n+1)
	head := make([]string, n+1)
	head[0] = " "
	for j, m := range moves {
		head[j+1] = abbrev(m)
	}
	grid[0] = head

	for i := 0; i < n; i++ {
		row := make([]string, n+1)
		row[0] = abbrev(moves[i])
		for j := 0; j < n; j++ {
			row[j+1] = resolveIndex(n, i, j).String()
		}
		grid[i+1] = row
	}
	return grid
}

func abbrev(move string) string {
	r, size := utf8.DecodeRuneInString(move)
	if r == utf8.RuneError && size <= 1 {
		return "?"
	}
	return cases.Upper(language.Und).String(move[:size])
}

// FormatTable left-aligns every column to its widest cell. Cells are
// followed by one space; rows end with a newline.
func FormatTable(grid [][]string) string {
	if len(grid) == 0 {
		return ""
	}

	widths := make([]int, len(grid[0]))
	for _, row := range grid {
		for j, cell := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			if w := utf8.RuneCountInString(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for j, cell := range row {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[j]-utf8.RuneCountInString(cell)+1))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
