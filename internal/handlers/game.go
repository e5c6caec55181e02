package handlers

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/middleware"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/store"
)

type GameHandler struct {
	log     logrus.FieldLogger
	store   *store.Store
	cookies *config.Cookies
	ws      *config.WebSocket
	game    *config.Game

	mu      sync.Mutex // guards sampler
	sampler mines.Sampler
}

func NewGameHandler(
	log logrus.FieldLogger,
	st *store.Store,
	cookies *config.Cookies,
	ws *config.WebSocket,
	game *config.Game,
	rnd *rand.Rand,
) (*GameHandler, error) {
	sampler, err := mines.ParseSampler(game.Sampler, rnd)
	if err != nil {
		return nil, err
	}

	handler := &GameHandler{
		log:     log,
		store:   st,
		cookies: cookies,
		ws:      ws,
		game:    game,
		sampler: sampler,
	}

	return handler, nil
}

func (g *GameHandler) newBoard(dto NewGameDTO) (*mines.Board, error) {
	if dto.Rows > g.game.MaxRows || dto.Cols > g.game.MaxCols {
		return nil, fmt.Errorf(
			"%w: board is limited to %dx%d", mines.ErrInvalidArgument, g.game.MaxRows, g.game.MaxCols,
		)
	}
	if len(dto.Bombs) > 0 {
		return mines.NewBoardWithBombs(dto.Rows, dto.Cols, dto.Bombs)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return mines.NewBoard(dto.Rows, dto.Cols, dto.BombCount, g.sampler)
}

// authorize checks that the request carries a token for session id.
func (g *GameHandler) authorize(r *http.Request, id string) error {
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.SessionID != id {
		return ErrForbidden
	}
	return nil
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	board, err := g.newBoard(dto)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	entry, err := g.store.Create(r.Context(), mines.NewSession(board))
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	jwt := g.cookies.JWT()
	token, err := jwt.Sign(jwt.NewSessionClaims(entry.ID))
	if err != nil {
		sendError(w, g.log, fmt.Errorf("unable to sign session token: %w", err))
		return
	}
	if err := g.cookies.Refresh(w, token); err != nil {
		sendError(w, g.log, err)
		return
	}

	g.log.WithFields(logrus.Fields{
		"session_id": entry.ID,
		"rows":       board.Rows(),
		"cols":       board.Cols(),
		"bombs":      board.BombCount(),
	}).Info("new game")

	sendJSONOrLog(w, g.log, NewGameResponse{
		Session: NewSessionDTO(entry),
		Token:   token,
	})
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	entry, err := g.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(entry))
}

type moveFunc func(s *mines.Session, cell int) (mines.Event, error)

func revealMove(s *mines.Session, cell int) (mines.Event, error) { return s.Reveal(cell) }

func openMove(s *mines.Session, cell int) (mines.Event, error) { return s.Open(cell) }

// move applies fn to the cell described by dto while holding the entry.
func (g *GameHandler) move(entry *store.Entry, dto CellDTO, fn moveFunc) (*MoveDTO, error) {
	var ev mines.Event
	err := entry.Do(func(s *mines.Session) error {
		cell, err := dto.Linear(s.Board())
		if err != nil {
			return err
		}
		ev, err = fn(s, cell)
		return err
	})
	if err != nil {
		return nil, err
	}

	log := g.log.WithFields(logrus.Fields{
		"session_id": entry.ID,
		"cell":       ev.Cell,
		"event":      ev.Kind,
	})
	if ev.Kind == mines.Victory || ev.Kind == mines.Defeat {
		log.Info("game over")
	} else {
		log.Debug("move")
	}

	return &MoveDTO{
		Event:   NewEventDTO(ev),
		Session: NewSessionDTO(entry),
	}, nil
}

func (g *GameHandler) handleMove(fn moveFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := g.authorize(r, id); err != nil {
			sendError(w, g.log, err)
			return
		}

		dto, err := ParseCellDTO(r.URL.Query())
		if err != nil {
			sendError(w, g.log, err)
			return
		}

		entry, err := g.store.Get(r.Context(), id)
		if err != nil {
			sendError(w, g.log, err)
			return
		}

		res, err := g.move(entry, dto, fn)
		if err != nil {
			sendError(w, g.log, err)
			return
		}

		sendJSONOrLog(w, g.log, res)
	}
}

// Reveal exposes exactly the requested cell.
func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.handleMove(revealMove)(w, r)
}

// Open reveals the requested cell and cascades through blank cells.
func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	g.handleMove(openMove)(w, r)
}

// Board dumps the full board as text once the session is over.
func (g *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	entry, err := g.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	var (
		text string
		over bool
	)
	entry.View(func(s *mines.Session, _ *time.Time) {
		over = s.State().Over()
		if over {
			text = s.Board().StringGrid(g.game.Blank)
		}
	})
	if !over {
		sendError(w, g.log, ErrNotOver)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintln(w, text); err != nil {
		g.log.WithError(err).Error("unable to send board")
	}
}
