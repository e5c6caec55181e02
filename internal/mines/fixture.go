package mines

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

/*
 * Fixture files hold boards as text, one grid per block:
 *
 *	; comment
 *	*1__
 *	11__
 *
 *	_1*
 *	_11
 *
 * '*' is a bomb, a digit is a neighbour count and anything else is a cell
 * without bombs around it. Blocks are separated by one empty line. A line
 * shorter than the longest line of its block is padded with empty cells.
 */

// Fixture is a board as read from text. Its counts are the ones written in
// the text, not recomputed, so a fixture can be checked against NewBoard.
type Fixture struct {
	Line           int // line number of the block's first row, 0 if not from a file
	Rows, Cols     int
	Bombs          []int
	NeighborCounts map[int]int
	Text           string
}

// ParseFixture reads a flattened grid such as "*12_" for a 2x2 board.
func ParseFixture(rows, cols int, s string) (*Fixture, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidArgument, rows, cols)
	}
	cells := []rune(s)
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrMalformedFixture, len(cells), rows, cols)
	}

	f := &Fixture{
		Rows:           rows,
		Cols:           cols,
		NeighborCounts: make(map[int]int),
		Text:           s,
	}
	for i, c := range cells {
		switch {
		case c == BombGlyph:
			f.Bombs = append(f.Bombs, i)
		case '1' <= c && c <= '9':
			f.NeighborCounts[i] = int(c - '0')
		}
	}
	return f, nil
}

// ReadFixtures parses every block of a fixture file.
func ReadFixtures(r io.Reader) ([]*Fixture, error) {
	var (
		fixtures []*Fixture
		block    []string
		start    int
		lineNo   int
	)

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		cols := 0
		for _, l := range block {
			cols = max(cols, len([]rune(l)))
		}
		var sb strings.Builder
		for _, l := range block {
			sb.WriteString(l)
			sb.WriteString(strings.Repeat(string(DefaultBlank), cols-len([]rune(l))))
		}
		f, err := ParseFixture(len(block), cols, sb.String())
		if err != nil {
			return fmt.Errorf("block at line %d: %w", start, err)
		}
		f.Line = start
		fixtures = append(fixtures, f)
		block = block[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ";") {
			continue
		}
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(block) == 0 {
			start = lineNo
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// WriteFixtures dumps boards in fixture format using the default blank glyph.
// A board with a zero dimension has no text form and is rejected before
// anything is written.
func WriteFixtures(w io.Writer, boards ...*Board) error {
	for i, b := range boards {
		if b.Bound() == 0 {
			return fmt.Errorf("%w: board %d is %dx%d", ErrInvalidArgument, i, b.Rows(), b.Cols())
		}
	}
	for i, b := range boards {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, b.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Board rebuilds the fixture's board from its bombs alone.
func (f *Fixture) Board() (*Board, error) {
	return NewBoardWithBombs(f.Rows, f.Cols, f.Bombs)
}

// Matches reports whether b has the fixture's shape, bombs and counts.
func (f *Fixture) Matches(b *Board) bool {
	if f.Rows != b.Rows() || f.Cols != b.Cols() {
		return false
	}
	bombs := slices.Clone(f.Bombs)
	slices.Sort(bombs)
	return slices.Equal(bombs, b.bombList) && maps.Equal(f.NeighborCounts, b.counts)
}
