package mines

import "fmt"

// Coord identifies one cell of a rows x cols grid both by (row, col) and by
// its row-major linear index. Neighbors holds the linear indices of the
// valid cells around it in scan order.
type Coord struct {
	Rows, Cols int
	Row, Col   int
	Linear     int
	Neighbors  []int
}

// NewCoord derives the full coordinate of a linear index. The caller
// guarantees 0 <= linear < rows*cols.
func NewCoord(rows, cols, linear int) Coord {
	row, col := FromLinear(cols, linear)
	return Coord{
		Rows:      rows,
		Cols:      cols,
		Row:       row,
		Col:       col,
		Linear:    linear,
		Neighbors: Neighbors(rows, cols, row, col),
	}
}

// Equal ignores the neighbour list, which is a function of the other fields.
func (c Coord) Equal(o Coord) bool {
	return c.Rows == o.Rows && c.Cols == o.Cols &&
		c.Row == o.Row && c.Col == o.Col &&
		c.Linear == o.Linear
}

// Coord implements [fmt.Stringer]
func (c Coord) String() string {
	return fmt.Sprintf("%d:%d(%d) in %dx%d", c.Row, c.Col, c.Linear, c.Rows, c.Cols)
}

func ToLinear(cols, row, col int) int {
	return row*cols + col
}

func FromLinear(cols, linear int) (row, col int) {
	row = linear / cols
	col = linear - row*cols
	return
}

func IsValid(rows, cols, row, col int) bool {
	return 0 <= row && row < rows && 0 <= col && col < cols
}

// Neighbors lists the linear indices of the cells around (row, col), scanning
// the 3x3 block row by row and skipping the centre and anything off the grid.
func Neighbors(rows, cols, row, col int) []int {
	neighbors := make([]int, 0, 8)
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if (r != row || c != col) && IsValid(rows, cols, r, c) {
				neighbors = append(neighbors, ToLinear(cols, r, c))
			}
		}
	}
	return neighbors
}
