// Package layout reads and writes boards as plain text, one line per row and
// one rune per cell, and loads YAML scenario files built on that format.
//
//	S..#
//	.#.#
//	.#..
//	...E
//
// Runes: '.' free, '#' blocked, 'S' start, 'E' end. Format also writes the
// search roles 'o' open, 'x' closed and '*' path; Parse reads those back as
// free cells, so a snapshot can be re-run as a fresh board.
package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

// DefaultCellSize is the pixel size per cell used when Parse gets no width.
const DefaultCellSize = 16

// Cell runes.
const (
	RuneFree    = '.'
	RuneBlocked = '#'
	RuneStart   = 'S'
	RuneEnd     = 'E'
	RuneOpen    = 'o'
	RuneClosed  = 'x'
	RunePath    = '*'
)

var (
	// ErrEmpty is returned when the input holds no rows.
	ErrEmpty = errors.New("layout: no rows")

	// ErrNotSquare is returned when a row length differs from the row count.
	ErrNotSquare = errors.New("layout: grid must be square")

	// ErrUnknownRune is returned for a rune outside the layout alphabet.
	ErrUnknownRune = errors.New("layout: unknown cell rune")

	// ErrDuplicateMarker is returned when S or E appears more than once.
	ErrDuplicateMarker = errors.New("layout: start or end given twice")
)

// Parse reads a square layout from r and builds a grid of the given pixel
// width. A width of zero or less means rows × DefaultCellSize. Blank lines
// are ignored and trailing whitespace is trimmed from each row.
func Parse(r io.Reader, width int) (*gridgraph.Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("layout: read: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	n := len(rows)
	if width <= 0 {
		width = n * DefaultCellSize
	}
	g, err := gridgraph.NewGrid(n, width)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	for r, line := range rows {
		if got := utf8.RuneCountInString(line); got != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, got, n)
		}
		c := 0
		for _, ch := range line {
			if err := place(g, g.CellAt(r, c), ch); err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			c++
		}
	}
	return g, nil
}

// ParseString is Parse over a string.
func ParseString(s string, width int) (*gridgraph.Grid, error) {
	return Parse(strings.NewReader(s), width)
}

func place(g *gridgraph.Grid, c *gridgraph.Cell, ch rune) error {
	switch ch {
	case RuneFree, RuneOpen, RuneClosed, RunePath:
		return nil
	case RuneBlocked:
		return g.Block(c)
	case RuneStart:
		if g.Start() != nil {
			return fmt.Errorf("%w: second %q", ErrDuplicateMarker, ch)
		}
		return g.SetStart(c)
	case RuneEnd:
		if g.End() != nil {
			return fmt.Errorf("%w: second %q", ErrDuplicateMarker, ch)
		}
		return g.SetEnd(c)
	}
	return fmt.Errorf("%w: %q", ErrUnknownRune, ch)
}

// Format writes g to w, one row per line, including search roles.
func Format(w io.Writer, g *gridgraph.Grid) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Rows(); c++ {
			bw.WriteRune(Rune(g.CellAt(r, c)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String returns the Format output of g.
func String(g *gridgraph.Grid) string {
	var sb strings.Builder
	_ = Format(&sb, g)
	return sb.String()
}

// Rows returns g as one layout string per row.
func Rows(g *gridgraph.Grid) []string {
	rows := make([]string, g.Rows())
	buf := make([]rune, g.Rows())
	for r := range rows {
		for c := range buf {
			buf[c] = Rune(g.CellAt(r, c))
		}
		rows[r] = string(buf)
	}
	return rows
}

// Rune returns the layout rune of a single cell.
func Rune(c *gridgraph.Cell) rune {
	if c.Blocked() {
		return RuneBlocked
	}
	switch c.Role() {
	case gridgraph.RoleStart:
		return RuneStart
	case gridgraph.RoleEnd:
		return RuneEnd
	case gridgraph.RoleOpen:
		return RuneOpen
	case gridgraph.RoleClosed:
		return RuneClosed
	case gridgraph.RolePath:
		return RunePath
	}
	return RuneFree
}
