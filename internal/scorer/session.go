// internal/scorer/session.go
//
// Session is the command surface used by the HTTP layer:
//   - Start, ScoreBall, Undo, Redo, EndInnings mutate the live match.
//   - Discard abandons it and clears the persisted snapshot.
//   - View exposes the current match plus canUndo/canRedo.
//
// Each accepted transition records the prior state in the history manager
// and hands the new state to the injected store. Persistence is best effort:
// a failed save is logged and the in-memory transition stands.
//
// Commands are serialised by a mutex so that HTTP handlers running on
// separate goroutines still see one writer at a time.

package scorer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robalobadob/cricket-scorer/internal/history"
	"github.com/robalobadob/cricket-scorer/internal/match"
	"github.com/robalobadob/cricket-scorer/internal/store"
)

var (
	// ErrNoMatch is returned by commands issued before a match is started or loaded.
	ErrNoMatch = errors.New("no match in progress")
	// ErrMatchCompleted is returned when scoring or ending an innings after the match finished.
	ErrMatchCompleted = errors.New("match already completed")
)

// Session owns the single live match.
type Session struct {
	mu      sync.Mutex
	store   store.Store
	hist    *history.Manager
	current *match.Match
	log     zerolog.Logger
}

// View is a read-only copy of the session state.
type View struct {
	Match   *match.Match
	CanUndo bool
	CanRedo bool
}

// Outcome is the result of ScoreBall.
type Outcome struct {
	View
	// Accepted is false when the innings was locked and the ball ignored.
	Accepted bool
}

// New constructs a Session persisting to st. historyLimit caps undo depth
// (0 = unlimited).
func New(st store.Store, historyLimit int, logger zerolog.Logger) *Session {
	return &Session{
		store: st,
		hist:  history.New(historyLimit),
		log:   logger.With().Str("component", "scorer").Logger(),
	}
}

// Load restores the last persisted match. Missing or unreadable snapshots
// leave the session with no match in progress; Load never fails.
func (s *Session) Load(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.hist.Reset()
	m, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Info().Msg("no persisted match")
	case err != nil:
		s.log.Warn().Err(err).Msg("discarding persisted match")
	default:
		s.current = &m
		s.log.Info().
			Str("teamOne", m.Config.TeamOneName).
			Str("teamTwo", m.Config.TeamTwoName).
			Int("innings", m.CurrentInnings).
			Msg("resumed match")
	}
	return s.view()
}

// Start begins a new match, discarding the current one and its history.
func (s *Session) Start(ctx context.Context, cfg match.Config) (View, error) {
	m, err := match.NewMatch(cfg)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.Reset()
	s.current = &m
	s.persist(ctx)
	s.log.Info().
		Str("teamOne", m.Config.TeamOneName).
		Str("teamTwo", m.Config.TeamTwoName).
		Int("overs", m.Config.TotalOvers).
		Msg("match started")
	return s.view(), nil
}

// Discard abandons the current match: both history stacks are dropped and
// the persisted snapshot is removed.
func (s *Session) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoMatch
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear match: %w", err)
	}
	s.current = nil
	s.hist.Reset()
	s.log.Info().Msg("match discarded")
	return nil
}

// ScoreBall applies one delivery to the active innings.
func (s *Session) ScoreBall(ctx context.Context, b match.Ball) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return Outcome{}, err
	}
	prior := *s.current
	next, accepted, err := match.ApplyBall(prior, b)
	if err != nil {
		return Outcome{}, err
	}
	if !accepted {
		s.log.Debug().Str("kind", string(b.Kind)).Msg("ball rejected: innings locked")
		return Outcome{View: s.view()}, nil
	}

	s.hist.Record(prior)
	s.current = &next
	s.persist(ctx)
	return Outcome{View: s.view(), Accepted: true}, nil
}

// EndInnings moves to the second innings or completes the match.
func (s *Session) EndInnings(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live(); err != nil {
		return View{}, err
	}
	prior := *s.current
	next := match.EndInnings(prior)

	s.hist.Record(prior)
	s.current = &next
	s.persist(ctx)
	s.log.Info().Int("innings", next.CurrentInnings).Str("status", string(next.Status)).Msg("innings ended")
	return s.view(), nil
}

// Undo restores the previous state. moved is false when there was nothing
// to undo.
func (s *Session) Undo(ctx context.Context) (v View, moved bool, err error) {
	return s.travel(ctx, s.hist.Undo)
}

// Redo re-applies the last undone state. moved is false when there was
// nothing to redo.
func (s *Session) Redo(ctx context.Context) (v View, moved bool, err error) {
	return s.travel(ctx, s.hist.Redo)
}

func (s *Session) travel(ctx context.Context, step func(match.Match) (match.Match, bool)) (View, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return View{}, false, ErrNoMatch
	}
	next, ok := step(*s.current)
	if !ok {
		return s.view(), false, nil
	}
	s.current = &next
	s.persist(ctx)
	return s.view(), true, nil
}

// View returns a copy of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	v := View{CanUndo: s.hist.CanUndo(), CanRedo: s.hist.CanRedo()}
	if s.current != nil {
		c := s.current.Clone()
		v.Match = &c
	}
	return v
}

func (s *Session) live() error {
	if s.current == nil {
		return ErrNoMatch
	}
	if s.current.Status == match.StatusCompleted {
		return ErrMatchCompleted
	}
	return nil
}

func (s *Session) persist(ctx context.Context) {
	if err := s.store.Save(ctx, *s.current); err != nil {
		s.log.Warn().Err(err).Msg("persist match")
	}
}
