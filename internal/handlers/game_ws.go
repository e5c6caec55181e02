package handlers

import (
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/store"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", mines.ErrInvalidArgument)
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: col must be an int", mines.ErrInvalidArgument)
		return
	}
	return
}

var commandNargs = map[string]int{
	"g": 0,
	"v": 2,
	"o": 2,
}

// runCommand executes one line of the socket protocol. "g" fetches the
// session, "v row col" reveals one cell, "o row col" opens with cascade.
func (g *GameHandler) runCommand(entry *store.Entry, c string) (any, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty command", mines.ErrInvalidArgument)
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", mines.ErrInvalidArgument, parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf("%w: %q takes %d arguments", mines.ErrInvalidArgument, parts[0], nargs)
	}

	if parts[0] == "g" {
		return NewSessionDTO(entry), nil
	}

	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return nil, err
	}
	dto := CellDTO{Row: &row, Col: &col}

	switch parts[0] {
	case "v":
		return g.move(entry, dto, revealMove)
	case "o":
		return g.move(entry, dto, openMove)
	}
	return nil, fmt.Errorf("%w: invalid command", mines.ErrInvalidArgument)
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := g.authorize(r, id); err != nil {
		sendError(w, g.log, err)
		return
	}

	entry, err := g.store.Get(r.Context(), id)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}

	defer c.Close()

	log := g.log.WithField("session_id", id)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)
		for _, line := range iterBySep(text, "\n") {
			reply, err := g.runCommand(entry, line)
			if err != nil {
				if statusOf(err) == http.StatusInternalServerError {
					log.WithError(err).Error("unable to process command")
					return
				}
				reply = wrapError(err)
			}
			if err := c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout)); err != nil {
				log.WithError(err).Error("unable to set write deadline")
				return
			}
			if err := c.WriteJSON(reply); err != nil {
				log.WithError(err).Error("unable to write json")
				return
			}
		}
		log.Debug("\t< <session data>")
	}
}
