package handlers

import (
	"fmt"
	"time"

	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/store"
)

type NewGameDTO struct {
	Rows      int   `schema:"rows,required"`
	Cols      int   `schema:"cols,required"`
	BombCount int   `schema:"bomb_count"`
	Bombs     []int `schema:"bombs"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("%w: %w", mines.ErrInvalidArgument, err)
	}
	return dto, nil
}

// CellDTO addresses a cell either by its linear index or by row and column.
type CellDTO struct {
	Cell *int `schema:"cell"`
	Row  *int `schema:"row"`
	Col  *int `schema:"col"`
}

func ParseCellDTO(src map[string][]string) (CellDTO, error) {
	var dto CellDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("%w: %w", mines.ErrInvalidArgument, err)
	}
	return dto, nil
}

// Linear resolves the cell on b. Row and column outside the board are
// rejected here; a bad linear index is left for the session to reject.
func (c CellDTO) Linear(b *mines.Board) (int, error) {
	if c.Cell != nil {
		return *c.Cell, nil
	}
	if c.Row == nil || c.Col == nil {
		return 0, fmt.Errorf("%w: either cell or row and col are required", mines.ErrInvalidArgument)
	}
	i, ok := b.Linear(*c.Row, *c.Col)
	if !ok {
		return 0, fmt.Errorf("%w: (%d,%d) is off the board", mines.ErrInvalidArgument, *c.Row, *c.Col)
	}
	return i, nil
}

type SessionDTO struct {
	SessionID          string      `json:"session_id"`
	Rows               int         `json:"rows"`
	Cols               int         `json:"cols"`
	BombCount          int         `json:"bomb_count"`
	State              mines.State `json:"state"`
	RemainingSafeCells int         `json:"remaining_safe_cells"`
	Grid               []int       `json:"grid"`
	StartedAt          int64       `json:"started_at"`
	EndedAt            *int64      `json:"ended_at,omitempty"`
}

func NewSessionDTO(e *store.Entry) *SessionDTO {
	var dto *SessionDTO
	e.View(func(s *mines.Session, endedAt *time.Time) {
		b := s.Board()
		dto = &SessionDTO{
			SessionID:          e.ID,
			Rows:               b.Rows(),
			Cols:               b.Cols(),
			BombCount:          b.BombCount(),
			State:              s.State(),
			RemainingSafeCells: s.RemainingSafeCells(),
			Grid:               s.PlayerGrid(),
			StartedAt:          e.StartedAt.UnixMilli(),
		}
		if endedAt != nil {
			ms := endedAt.UnixMilli()
			dto.EndedAt = &ms
		}
	})
	return dto
}

type EventDTO struct {
	Kind      mines.EventKind `json:"kind"`
	Cell      int             `json:"cell"`
	Revealed  []int           `json:"revealed"`
	RevealAll bool            `json:"reveal_all"`
}

func NewEventDTO(ev mines.Event) EventDTO {
	revealed := ev.Revealed
	if revealed == nil {
		revealed = []int{}
	}
	return EventDTO{
		Kind:      ev.Kind,
		Cell:      ev.Cell,
		Revealed:  revealed,
		RevealAll: ev.RevealAll,
	}
}

type MoveDTO struct {
	Event   EventDTO    `json:"event"`
	Session *SessionDTO `json:"session"`
}

type NewGameResponse struct {
	Session *SessionDTO `json:"session"`
	Token   string      `json:"token"`
}
