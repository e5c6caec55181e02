package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

// Cookies carries a session token split in two: header and payload stay
// readable by scripts, the signature is http-only.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func NewCookies(jwt *JWT) (*Cookies, error) {
	domain, ok := os.LookupEnv("COOKIES_DOMAIN")
	if !ok {
		return nil, fmt.Errorf("COOKIES_DOMAIN env variable is not set")
	}

	secureStr, ok := os.LookupEnv("COOKIES_SECURE")
	if !ok {
		return nil, fmt.Errorf("COOKIES_SECURE env variable is not set")
	}

	sameSiteStr, ok := os.LookupEnv("COOKIES_SAMESITE")
	if !ok {
		return nil, fmt.Errorf("COOKIES_SAMESITE env variable is not set")
	}

	cookies := &Cookies{
		Domain:   domain,
		Secure:   secureStr != "0",
		SameSite: parseSameSite(sameSiteStr),
		jwt:      jwt,
	}

	return cookies, nil
}

func NewCookiesWith(jwt *JWT, domain string, secure bool, sameSite http.SameSite) *Cookies {
	return &Cookies{Domain: domain, Secure: secure, SameSite: sameSite, jwt: jwt}
}

func (c *Cookies) JWT() *JWT {
	return c.jwt
}

func (c *Cookies) set(w http.ResponseWriter, name, value string, httpOnly bool, expires time.Time, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	c.set(w, authCookie, "delete", false, time.Time{}, -1)
	c.set(w, signCookie, "delete", true, time.Time{}, -1)
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	expires := time.Now().Add(c.jwt.tokenLifetime)
	c.set(w, authCookie, header+"."+payload, false, expires, 0)
	c.set(w, signCookie, signature, true, expires, 0)
	return nil
}

// ParseSessionClaims reads the token from the cookie pair or, failing
// that, from an "Authorization: Bearer" header.
func (c *Cookies) ParseSessionClaims(r *http.Request) (*SessionClaims, error) {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return c.jwt.ParseSessionClaims(strings.TrimSpace(token))
	}
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return nil, err
	}
	return c.jwt.ParseSessionClaims(auth.Value + "." + sign.Value)
}
