// internal/httpserver/routes_match.go
//
// HTTP routes for the live match.
//   - GET  /match              → current view (404 when no match)
//   - GET  /match/innings/{n}  → one innings ledger, read-only
//   - POST /match/new          → start a match from a config body
//   - POST /match/ball         → score one delivery
//   - POST /match/undo|redo    → time-travel over history
//   - POST /match/end-innings  → end innings 1, or finish the match
//   - DELETE /match            → abandon the match and its saved snapshot
//
// Lock flags, target and result are recomputed from the match on every
// response so the client never has to cache them.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/cricket-scorer/internal/match"
	"github.com/robalobadob/cricket-scorer/internal/scorer"
)

// Next-action labels for the innings button.
const (
	actionEndInnings  = "end_innings"
	actionFinishMatch = "finish_match"
)

// matchRes is the view returned by every /match endpoint.
type matchRes struct {
	Match      *match.Match  `json:"match"`
	CanUndo    bool          `json:"canUndo"`
	CanRedo    bool          `json:"canRedo"`
	Locked     bool          `json:"locked"`
	Lock       match.Lock    `json:"lock"`
	Target     *int          `json:"target,omitempty"`
	Overs      []string      `json:"overs"` // per innings, "O.B"
	NextAction string        `json:"nextAction,omitempty"`
	Result     *match.Result `json:"result,omitempty"`
	Summary    string        `json:"summary,omitempty"`
	Accepted   *bool         `json:"accepted,omitempty"` // POST /match/ball only
	Moved      *bool         `json:"moved,omitempty"`    // POST /match/undo|redo only
}

func newMatchRes(v scorer.View) matchRes {
	res := matchRes{CanUndo: v.CanUndo, CanRedo: v.CanRedo, Overs: []string{}}
	m := v.Match
	if m == nil {
		return res
	}
	res.Match = m
	res.Overs = append(res.Overs, m.InningsOne.Overs())
	if m.InningsTwo != nil {
		res.Overs = append(res.Overs, m.InningsTwo.Overs())
	}
	if t, ok := m.Target(); ok {
		res.Target = &t
	}
	if r, ok := m.Result(); ok {
		res.Result = &r
		res.Summary = r.Summary()
		return res
	}
	res.Lock = m.LockState()
	res.Locked = res.Lock.Any()
	res.NextAction = actionEndInnings
	if m.CurrentInnings == 2 {
		res.NextAction = actionFinishMatch
	}
	return res
}

// handleGetMatch returns the live view, or 404 when no match is in progress.
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	v := s.session.View()
	if v.Match == nil {
		s.fail(w, r, scorer.ErrNoMatch)
		return
	}
	writeJSON(w, http.StatusOK, newMatchRes(v))
}

// inningsRes is returned by GET /match/innings/{n}.
type inningsRes struct {
	Number  int           `json:"number"`
	Live    bool          `json:"live"` // true when this is the innings being scored
	Innings match.Innings `json:"innings"`
	Overs   string        `json:"overs"`
	Target  *int          `json:"target,omitempty"`
}

// handleGetInnings returns one innings; 2 is only available once it exists.
func (s *Server) handleGetInnings(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || (n != 1 && n != 2) {
		writeError(w, http.StatusBadRequest, "innings must be 1 or 2")
		return
	}
	v := s.session.View()
	if v.Match == nil {
		s.fail(w, r, scorer.ErrNoMatch)
		return
	}
	m := v.Match
	res := inningsRes{
		Number: n,
		Live:   n == m.CurrentInnings && m.Status == match.StatusLive,
	}
	switch n {
	case 1:
		res.Innings = m.InningsOne
	case 2:
		if m.InningsTwo == nil {
			writeError(w, http.StatusNotFound, "innings_not_started")
			return
		}
		res.Innings = *m.InningsTwo
		if t, ok := m.Target(); ok {
			res.Target = &t
		}
	}
	res.Overs = res.Innings.Overs()
	writeJSON(w, http.StatusOK, res)
}

// handleNewMatch starts a match; body is a match.Config.
func (s *Server) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	var cfg match.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	v, err := s.session.Start(r.Context(), cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMatchRes(v))
}

// ballReq is the payload for POST /match/ball.
type ballReq struct {
	Type   string `json:"type"`   // legal | wide | no-ball | wicket
	Runs   int    `json:"runs"`   // runs off the bat, or run on an extra
	Wicket bool   `json:"wicket"` // wicket fell on a legal/wide/no-ball delivery
}

// handleBall scores one delivery. A locked innings answers 200 with
// accepted=false and the unchanged view.
func (s *Server) handleBall(w http.ResponseWriter, r *http.Request) {
	var req ballReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	kind, err := match.ParseKind(req.Type)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.session.ScoreBall(r.Context(), match.Ball{Kind: kind, Runs: req.Runs, Wicket: req.Wicket})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res := newMatchRes(out.View)
	res.Accepted = &out.Accepted
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	v, moved, err := s.session.Undo(r.Context())
	s.writeTravel(w, r, v, moved, err)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	v, moved, err := s.session.Redo(r.Context())
	s.writeTravel(w, r, v, moved, err)
}

func (s *Server) writeTravel(w http.ResponseWriter, r *http.Request, v scorer.View, moved bool, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res := newMatchRes(v)
	res.Moved = &moved
	writeJSON(w, http.StatusOK, res)
}

// handleEndInnings ends the first innings or finishes the match.
func (s *Server) handleEndInnings(w http.ResponseWriter, r *http.Request) {
	v, err := s.session.EndInnings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMatchRes(v))
}

// handleDiscard abandons the current match.
func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Discard(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
