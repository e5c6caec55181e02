package mines

import (
	"fmt"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var Log = logrus.New()

// Board is a fully specified grid: where the bombs are and how many bombs
// touch every other cell. It never changes after construction.
type Board struct {
	rows, cols, bound int

	bombs    mapset.Set[int]
	bombList []int // ascending

	/*
	 * Only non-bomb cells touching at least one bomb have an entry here;
	 * a missing key reads as zero.
	 */
	counts map[int]int
}

// NewBoard places bombCount bombs using s. Asking for more bombs than
// there are cells fills the whole grid.
func NewBoard(rows, cols, bombCount int, s Sampler) (*Board, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidArgument, rows, cols)
	}
	if bombCount < 0 {
		return nil, fmt.Errorf("%w: bomb count %d", ErrInvalidArgument, bombCount)
	}
	bombs := s.Sample(rows*cols, bombCount)

	Log.WithFields(logrus.Fields{
		"rows":      rows,
		"cols":      cols,
		"requested": bombCount,
		"placed":    len(bombs),
	}).Debug("placed bombs")

	return NewBoardWithBombs(rows, cols, bombs)
}

// NewBoardWithBombs builds a board from an explicit set of linear bomb
// positions. Duplicates and positions off the grid are rejected.
func NewBoardWithBombs(rows, cols int, bombs []int) (*Board, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidArgument, rows, cols)
	}
	bound := rows * cols

	set := mapset.New[int]()
	for _, b := range bombs {
		if b < 0 || b >= bound {
			return nil, fmt.Errorf("%w: bomb %d outside [0,%d)", ErrInvalidArgument, b, bound)
		}
		if set.Has(b) {
			return nil, fmt.Errorf("%w: duplicate bomb %d", ErrInvalidArgument, b)
		}
		set.Put(b)
	}

	bombList := slices.Clone(bombs)
	slices.Sort(bombList)

	return &Board{
		rows:     rows,
		cols:     cols,
		bound:    bound,
		bombs:    set,
		bombList: bombList,
		counts:   countNeighbors(rows, cols, bombList, set),
	}, nil
}

// NeighborCounts computes the sparse neighbour-count map for a bomb set on
// a rows x cols grid: each non-bomb cell maps to the number of bombs around
// it, cells without any bomb around are left out. Duplicate bombs count once
// and indices outside the grid are ignored.
func NeighborCounts(rows, cols int, bombs []int) map[int]int {
	set := mapset.New[int]()
	unique := make([]int, 0, len(bombs))
	for _, b := range bombs {
		if b < 0 || b >= rows*cols || set.Has(b) {
			continue
		}
		set.Put(b)
		unique = append(unique, b)
	}
	return countNeighbors(rows, cols, unique, set)
}

func countNeighbors(rows, cols int, bombs []int, set mapset.Set[int]) map[int]int {
	counts := make(map[int]int)
	if rows == 0 || cols == 0 {
		return counts
	}
	for _, b := range bombs {
		row, col := FromLinear(cols, b)
		for _, n := range Neighbors(rows, cols, row, col) {
			if !set.Has(n) {
				counts[n]++
			}
		}
	}
	return counts
}

func (b *Board) Rows() int  { return b.rows }
func (b *Board) Cols() int  { return b.cols }
func (b *Board) Bound() int { return b.bound }

func (b *Board) BombCount() int { return len(b.bombList) }

func (b *Board) SafeCells() int { return b.bound - len(b.bombList) }

func (b *Board) Valid(i int) bool { return 0 <= i && i < b.bound }

func (b *Board) IsBomb(i int) bool { return b.bombs.Has(i) }

// Bombs returns the bomb positions in ascending order.
func (b *Board) Bombs() []int {
	return slices.Clone(b.bombList)
}

func (b *Board) NeighborCounts() map[int]int {
	return maps.Clone(b.counts)
}

// NeighborCoords returns the cells with a non-zero count in ascending order.
func (b *Board) NeighborCoords() []int {
	return slices.Sorted(maps.Keys(b.counts))
}

// NeighborCountValues returns every non-zero count, sorted ascending. The
// values lose their positions; this is only useful to compare two boards
// cheaply.
func (b *Board) NeighborCountValues() []int {
	return slices.Sorted(maps.Values(b.counts))
}

// Coord returns the full coordinate of cell i. The caller guarantees
// Valid(i).
func (b *Board) Coord(i int) Coord {
	return NewCoord(b.rows, b.cols, i)
}

// Linear converts (row, col) to a cell index, reporting whether the pair
// lies on the board.
func (b *Board) Linear(row, col int) (int, bool) {
	if !IsValid(b.rows, b.cols, row, col) {
		return 0, false
	}
	return ToLinear(b.cols, row, col), true
}
