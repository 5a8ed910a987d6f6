// internal/httpserver/auth.go
//
// Scorer authentication.
// A single scorer account is configured through SCORER_USERNAME and
// SCORER_PASSWORD_HASH (bcrypt). Logging in issues an HS256 JWT, returned in
// the body and set as an HttpOnly cookie. Scoring routes accept either the
// cookie or an "Authorization: Bearer" header.
//
// When no password hash is configured, requireScorer lets every request
// through and /auth/login answers 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ctxScorerKey is the context key type for the authenticated scorer name.
type ctxScorerKey struct{}

// scorerFrom returns the authenticated scorer, if any.
func scorerFrom(ctx context.Context) string {
	name, _ := ctx.Value(ctxScorerKey{}).(string)
	return name
}

// mountAuthRoutes registers /auth/login, /auth/logout and /auth/me.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)
	s.r.With(s.requireScorer()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"username":    scorerFrom(r.Context()),
			"authEnabled": s.cfg.AuthEnabled(),
		})
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks the scorer credentials and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.AuthEnabled() {
		writeError(w, http.StatusNotFound, "auth_disabled")
		return
	}
	var body loginReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !strings.EqualFold(strings.TrimSpace(body.Username), s.cfg.ScorerUsername) ||
		!checkPassword(s.cfg.ScorerPasswordHash, body.Password) {
		s.log.Warn().Str("username", body.Username).Msg("failed scorer login")
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	tok, exp, err := s.signJWT(s.cfg.ScorerUsername)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.setAuthCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, map[string]any{"username": s.cfg.ScorerUsername, "token": tok, "expiresAt": exp})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// requireScorer enforces a valid scorer JWT when auth is enabled.
func (s *Server) requireScorer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.cfg.AuthEnabled() {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := s.bearerOrCookie(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			name, err := s.parseJWT(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxScorerKey{}, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 JWT for username expiring after JWT_EXPIRES_DAYS.
func (s *Server) signJWT(username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseJWT validates tok and returns the scorer name it was issued to.
func (s *Server) parseJWT(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if !strings.EqualFold(sub, s.cfg.ScorerUsername) {
		return "", errors.New("unknown scorer")
	}
	return sub, nil
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// setAuthCookie writes the auth token cookie with appropriate security attributes.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	c := s.cookie(token)
	c.Expires = exp
	http.SetCookie(w, c)
}

// clearAuthCookie deletes the auth token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	c := s.cookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (s *Server) cookie(value string) *http.Cookie {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
