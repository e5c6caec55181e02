package middleware

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-core/internal/config"
)

func TestWrapOrder(t *testing.T) {
	t.Parallel()

	var trace []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trace = append(trace, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trace = append(trace, "handler")
	}), tag("inner"), tag("outer"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, trace)
}

func TestLoggingRecordsStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/game?rows=1", nil))

	out := buf.String()
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"uri":"/game?rows=1"`)
}

func TestAuth(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	j := config.NewJWTWithKeys(key, &key.PublicKey, time.Hour)
	cookies := config.NewCookiesWith(j, "", false, http.SameSiteLaxMode)

	token, err := j.Sign(j.NewSessionClaims("abc"))
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})

	var (
		got *config.SessionClaims
		ok  bool
	)
	h := Auth(log, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = SessionClaims(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		wantID string
	}{
		{"no token", "", ""},
		{"valid bearer", "Bearer " + token, "abc"},
		{"tampered bearer", "Bearer " + strings.Replace(token, ".", ".x", 1), ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if tt.wantID == "" {
			assert.False(t, ok, tt.name)
			continue
		}
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.wantID, got.SessionID, tt.name)
	}
}
