package mines

import (
	"fmt"
	"slices"

	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

type State int

const (
	InProgress State = iota
	Won
	Lost
)

var stateNames = [...]string{
	InProgress: "in_progress",
	Won:        "won",
	Lost:       "lost",
}

// State implements [fmt.Stringer]
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s State) Over() bool {
	return s != InProgress
}

type EventKind int

const (
	// Unchanged: the cell had already been revealed.
	Unchanged EventKind = iota
	Continued
	Victory
	Defeat
)

var eventNames = [...]string{
	Unchanged: "unchanged",
	Continued: "continued",
	Victory:   "won",
	Defeat:    "lost",
}

// EventKind implements [fmt.Stringer]
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event tells the caller what a reveal did. On Defeat RevealAll is set and
// the caller is expected to show the whole board.
type Event struct {
	Kind      EventKind
	Cell      int
	Revealed  []int // newly revealed cells, in reveal order
	RevealAll bool
}

// Session tracks one player's progress on a board. It is not safe for
// concurrent use; callers serialise reveals.
type Session struct {
	board     *Board
	revealed  mapset.Set[int]
	order     []int
	remaining int
	state     State
}

func NewSession(b *Board) *Session {
	return &Session{
		board:     b,
		revealed:  mapset.New[int](),
		remaining: b.SafeCells(),
	}
}

func (s *Session) Board() *Board { return s.board }

func (s *Session) State() State { return s.state }

func (s *Session) RemainingSafeCells() int { return s.remaining }

func (s *Session) IsRevealed(i int) bool { return s.revealed.Has(i) }

// Revealed returns the revealed cells in ascending order.
func (s *Session) Revealed() []int {
	cells := slices.Clone(s.order)
	slices.Sort(cells)
	return cells
}

func (s *Session) check(cell int) error {
	if !s.board.Valid(cell) {
		return fmt.Errorf("%w: cell %d outside [0,%d)", ErrInvalidArgument, cell, s.board.Bound())
	}
	if s.state.Over() {
		return fmt.Errorf("%w: session %s", ErrGameOver, s.state)
	}
	return nil
}

// mark reveals a single unrevealed cell and applies the transition.
func (s *Session) mark(cell int) {
	s.revealed.Put(cell)
	s.order = append(s.order, cell)
	if s.board.IsBomb(cell) {
		s.state = Lost
		return
	}
	s.remaining--
	if s.remaining == 0 {
		s.state = Won
	}
}

func (s *Session) event(cell int, revealed []int) Event {
	ev := Event{Cell: cell, Revealed: revealed}
	switch {
	case len(revealed) == 0:
		ev.Kind = Unchanged
	case s.state == Lost:
		ev.Kind = Defeat
		ev.RevealAll = true
	case s.state == Won:
		ev.Kind = Victory
	default:
		ev.Kind = Continued
	}
	return ev
}

// Reveal exposes exactly one cell. Revealing a revealed cell has no effect.
func (s *Session) Reveal(cell int) (Event, error) {
	if err := s.check(cell); err != nil {
		return Event{Cell: cell}, err
	}
	if s.revealed.Has(cell) {
		return s.event(cell, nil), nil
	}
	s.mark(cell)
	return s.event(cell, []int{cell}), nil
}

// Open reveals a cell and, when it has no bomb around it, keeps revealing
// outwards through every connected zero cell and its border.
func (s *Session) Open(cell int) (Event, error) {
	if err := s.check(cell); err != nil {
		return Event{Cell: cell}, err
	}
	if s.revealed.Has(cell) {
		return s.event(cell, nil), nil
	}

	var (
		revealed []int
		todo     deque.Deque[int]
	)
	todo.PushBack(cell)
	for todo.Len() > 0 && !s.state.Over() {
		i := todo.PopFront()
		if s.revealed.Has(i) {
			continue
		}
		s.mark(i)
		revealed = append(revealed, i)
		if s.board.CellValue(i) != 0 {
			continue
		}
		c := s.board.Coord(i)
		for _, n := range c.Neighbors {
			if !s.revealed.Has(n) {
				todo.PushBack(n)
			}
		}
	}
	return s.event(cell, revealed), nil
}

// PlayerGrid is the board as the player sees it: Hidden for cells not yet
// revealed. Once the session is over every cell is shown.
func (s *Session) PlayerGrid() []int {
	grid := s.board.LinearGrid()
	if s.state.Over() {
		return grid
	}
	for i := range grid {
		if !s.revealed.Has(i) {
			grid[i] = Hidden
		}
	}
	return grid
}

func (s *Session) StringGrid(blank rune) string {
	return renderGrid(s.PlayerGrid(), s.board.Cols(), blank)
}
