package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	anonCookieName = "wordle_anon"
	adminKeyHeader = "X-Admin-Key"
)

// sessionClaims bind a player to one board session. Daily sessions also
// carry the puzzle they were started for.
type sessionClaims struct {
	SessionID string `json:"sid"`
	Daily     string `json:"daily,omitempty"`
	WordIndex int    `json:"widx,omitempty"`
	Started   int64  `json:"dst,omitempty"` // daily start, unix ms; survives re-signing
	jwt.RegisteredClaims
}

func (c *sessionClaims) playerID() string { return c.Subject }

// ctxClaimsKey is the context key type for storing sessionClaims.
type ctxClaimsKey struct{}

func claimsFrom(ctx context.Context) *sessionClaims {
	c, _ := ctx.Value(ctxClaimsKey{}).(*sessionClaims)
	return c
}

// signSessionToken creates an HS256 token for the session.
func (s *Server) signSessionToken(c sessionClaims) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.JWTExpires)
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(exp)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseSessionToken verifies signature, algorithm and expiry.
func (s *Server) parseSessionToken(tok string) (*sessionClaims, error) {
	c := &sessionClaims{}
	t, err := jwt.ParseWithClaims(tok, c, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return nil, err
	}
	if !t.Valid || c.SessionID == "" || c.Subject == "" {
		return nil, errors.New("invalid session token")
	}
	return c, nil
}

// requireSessionToken enforces a valid token whose session matches {id}.
func (s *Server) requireSessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		c, err := s.parseSessionToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if c.SessionID != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "wrong_session")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxClaimsKey{}, c)))
	})
}

// requireAdmin checks X-Admin-Key against the configured bcrypt hash.
// Without a configured hash the admin routes do not exist.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminKeyHash == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
			return
		}
		key := r.Header.Get(adminKeyHeader)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(s.opts.AdminKeyHash), []byte(key)) != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HashAdminKey returns the bcrypt hash to put in ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

// ensurePlayerID returns the anonymous player cookie, setting a new one if missing.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookie {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: sameSite,
		Expires:  s.opts.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
