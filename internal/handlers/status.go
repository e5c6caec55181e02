package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/middleware"
	"github.com/vancomm/minesweeper-core/internal/store"
)

type StatusHandler struct {
	log     logrus.FieldLogger
	store   *store.Store
	cookies *config.Cookies
}

func NewStatusHandler(log logrus.FieldLogger, st *store.Store, cookies *config.Cookies) *StatusHandler {
	return &StatusHandler{log: log, store: st, cookies: cookies}
}

type TokenInfo struct {
	SessionID string `json:"session_id"`
	ExpiresAt int64  `json:"expires_at"`
}

type Status struct {
	OK           bool       `json:"ok"`
	LiveSessions int        `json:"live_sessions"`
	Token        *TokenInfo `json:"token,omitempty"`
}

func (h StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := Status{OK: true, LiveSessions: h.store.Len()}
	if claims, ok := middleware.SessionClaims(r.Context()); ok {
		status.Token = &TokenInfo{SessionID: claims.SessionID}
		if claims.ExpiresAt != nil {
			status.Token.ExpiresAt = claims.ExpiresAt.UnixMilli()
		}
	}
	sendJSONOrLog(w, h.log, status)
}

// Leave drops the session token cookies. The session itself stays until it
// is swept.
func (h StatusHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
