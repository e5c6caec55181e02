package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-core/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// Auth attaches the session claims of a valid token to the request context.
// Requests without one pass through untouched; handlers decide what needs a
// token.
func Auth(log logrus.FieldLogger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseSessionClaims(r)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					log.WithError(err).Debug("rejected session token")
				}
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionClaims returns the claims Auth stored in ctx, if any.
func SessionClaims(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
