package mines

import (
	"strings"
)

const (
	// Bomb is the cell value of a bomb.
	Bomb = -1
	// Hidden is the player-view value of a cell that has not been revealed.
	Hidden = -2

	BombGlyph    = '*'
	HiddenGlyph  = '#'
	DefaultBlank = '_'
)

// CellValue is Bomb for a bomb and the number of surrounding bombs
// otherwise.
func (b *Board) CellValue(i int) int {
	if b.bombs.Has(i) {
		return Bomb
	}
	return b.counts[i]
}

// LinearGrid lists every cell value in linear order.
func (b *Board) LinearGrid() []int {
	grid := make([]int, b.bound)
	for i := range grid {
		grid[i] = b.CellValue(i)
	}
	return grid
}

// IntegerGrid lists every cell value as a rows x cols matrix.
func (b *Board) IntegerGrid() [][]int {
	grid := make([][]int, b.rows)
	for r := range grid {
		grid[r] = make([]int, b.cols)
	}
	for i := range b.bound {
		row, col := FromLinear(b.cols, i)
		grid[row][col] = b.CellValue(i)
	}
	return grid
}

// CellGlyph maps a cell value to the character used in text dumps.
func CellGlyph(value int, blank rune) rune {
	switch {
	case value == Bomb:
		return BombGlyph
	case value == Hidden:
		return HiddenGlyph
	case value == 0:
		return blank
	case 0 < value && value <= 9:
		return rune('0' + value)
	default:
		return '!'
	}
}

// StringGrid renders one line per row, rows joined by '\n' and no trailing
// newline.
func (b *Board) StringGrid(blank rune) string {
	return renderGrid(b.LinearGrid(), b.cols, blank)
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return b.StringGrid(DefaultBlank)
}

func renderGrid(values []int, cols int, blank rune) string {
	if cols == 0 {
		return ""
	}
	var sb strings.Builder
	for i, v := range values {
		if i > 0 && i%cols == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(CellGlyph(v, blank))
	}
	return sb.String()
}
