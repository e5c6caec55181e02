package config

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameDefaults(t *testing.T) {
	g, err := NewGame()
	require.NoError(t, err)
	assert.Equal(t, DefaultGame(), g)
}

func TestNewGameFromEnv(t *testing.T) {
	t.Setenv("GAME_MAX_ROWS", "30")
	t.Setenv("GAME_MAX_COLS", "16")
	t.Setenv("GAME_SAMPLER", "selection")
	t.Setenv("GAME_BLANK_GLYPH", ".")
	t.Setenv("GAME_SESSION_TTL", "15m")

	g, err := NewGame()
	require.NoError(t, err)
	assert.Equal(t, 30, g.MaxRows)
	assert.Equal(t, 16, g.MaxCols)
	assert.Equal(t, "selection", g.Sampler)
	assert.Equal(t, '.', g.Blank)
	assert.Equal(t, 15*time.Minute, g.SessionTTL)
}

func TestNewGameRejectsBadEnv(t *testing.T) {
	tests := map[string]string{
		"GAME_MAX_ROWS":    "many",
		"GAME_MAX_COLS":    "-3",
		"GAME_SAMPLER":     "reservoir",
		"GAME_BLANK_GLYPH": "__",
		"GAME_SESSION_TTL": "forever",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := NewGame()
			assert.Error(t, err)
		})
	}
}

func TestNewGameRejectsNonPositiveTTL(t *testing.T) {
	for _, ttl := range []string{"0s", "-5m"} {
		t.Run(ttl, func(t *testing.T) {
			t.Setenv("GAME_SESSION_TTL", ttl)
			_, err := NewGame()
			assert.ErrorContains(t, err, "must be positive")
		})
	}
}

func TestPortDefault(t *testing.T) {
	t.Setenv("APP_PORT", "")
	assert.Equal(t, ":8080", Port())

	t.Setenv("APP_PORT", ":9000")
	assert.Equal(t, ":9000", Port())
}

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewJWTWithKeys(key, &key.PublicKey, time.Hour)
}

func TestSessionTokenViaCookies(t *testing.T) {
	j := newTestJWT(t)
	cookies := NewCookiesWith(j, "", false, http.SameSiteLaxMode)

	token, err := j.Sign(j.NewSessionClaims("abc"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, token))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	claims, err := cookies.ParseSessionClaims(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionID)
}

func TestSessionTokenViaHeader(t *testing.T) {
	j := newTestJWT(t)
	cookies := NewCookiesWith(j, "", false, http.SameSiteLaxMode)

	token, err := j.Sign(j.NewSessionClaims("xyz"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	claims, err := cookies.ParseSessionClaims(req)
	require.NoError(t, err)
	assert.Equal(t, "xyz", claims.SessionID)

	req.Header.Set("Authorization", "Bearer "+token+"x")
	_, err = cookies.ParseSessionClaims(req)
	assert.Error(t, err)
}

func TestSessionTokenFromOtherKey(t *testing.T) {
	signer, verifier := newTestJWT(t), newTestJWT(t)

	token, err := signer.Sign(signer.NewSessionClaims("abc"))
	require.NoError(t, err)

	_, err = verifier.ParseSessionClaims(token)
	assert.Error(t, err)
}
