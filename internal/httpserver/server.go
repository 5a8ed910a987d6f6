// internal/httpserver/server.go
//
// HTTP server wiring for the cricket scoring backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", GET /match, GET /match/innings/{n}.
//   - Scorer endpoints (auth when configured): POST /match/new, /match/ball,
//     /match/undo, /match/redo, /match/end-innings, DELETE /match.
//   - Scorer login: /auth/* (see auth.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every response body is JSON; errors are {"error":"..."}.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robalobadob/cricket-scorer/internal/config"
	"github.com/robalobadob/cricket-scorer/internal/match"
	"github.com/robalobadob/cricket-scorer/internal/scorer"
)

const defaultTimeout = 10 * time.Second

// Server bundles router, scoring session and configuration.
type Server struct {
	r       *chi.Mux
	session *scorer.Session
	cfg     config.Config
	log     zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(sess *scorer.Session, cfg config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		session: sess,
		cfg:     cfg,
		log:     logger.With().Str("component", "http").Logger(),
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)        // add X-Request-ID
	s.r.Use(chimw.RealIP)           // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)        // recover from panics
	s.r.Use(chimw.Timeout(timeout)) // bound handler time
	s.r.Use(jsonContentType)        // default JSON responses
	s.r.Use(s.cors)                 // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"cricket-scorer","endpoints":["/health","GET /match","POST /match/ball","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Read-only views, public
	s.r.Get("/match", s.handleGetMatch)
	s.r.Get("/match/innings/{n}", s.handleGetInnings)

	// Scoring: scorer only when a password hash is configured
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireScorer())
		r.Post("/match/new", s.handleNewMatch)
		r.Post("/match/ball", s.handleBall)
		r.Post("/match/undo", s.handleUndo)
		r.Post("/match/redo", s.handleRedo)
		r.Post("/match/end-innings", s.handleEndInnings)
		r.Delete("/match", s.handleDiscard)
	})

	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps domain errors onto HTTP status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, match.ErrInvalidBall), errors.Is(err, match.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scorer.ErrNoMatch):
		writeError(w, http.StatusNotFound, "no_match")
	case errors.Is(err, scorer.ErrMatchCompleted):
		writeError(w, http.StatusConflict, "match_completed")
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Str("requestId", chimw.GetReqID(r.Context())).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
