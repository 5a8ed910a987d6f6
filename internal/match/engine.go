// internal/match/engine.go
//
// Core scoring engine for a single two-innings limited-overs match.
// Responsibilities:
//   - Create new matches from a validated Config.
//   - Apply deliveries (legal, wide, no-ball, wicket) to the active innings.
//   - Advance innings 1 → innings 2 → completed.
//
// Notes:
//   - Every operation returns a fresh Match produced by Clone; the input is
//     never mutated, so stored snapshots cannot be corrupted by later play.
//   - End-of-play conditions (overs done, all out, target reached) reject a
//     ball silently with accepted=false. Malformed balls return ErrInvalidBall.

package match

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by NewMatch for unusable parameters.
var ErrInvalidConfig = errors.New("invalid match config")

// NewMatch validates cfg and returns a live match with the first innings
// ready to score. Empty rules default to RuleReball.
func NewMatch(cfg Config) (Match, error) {
	cfg.TeamOneName = strings.TrimSpace(cfg.TeamOneName)
	cfg.TeamTwoName = strings.TrimSpace(cfg.TeamTwoName)
	if cfg.WideRule == "" {
		cfg.WideRule = RuleReball
	}
	if cfg.NoBallRule == "" {
		cfg.NoBallRule = RuleReball
	}
	if err := cfg.Validate(); err != nil {
		return Match{}, err
	}
	return Match{
		Config:         cfg,
		CurrentInnings: 1,
		InningsOne:     newInnings(cfg.TeamOneName, cfg.TeamTwoName),
		Status:         StatusLive,
	}, nil
}

// Validate checks team names, overs and extra-ball rules.
func (c Config) Validate() error {
	switch {
	case c.TeamOneName == "" || c.TeamTwoName == "":
		return fmt.Errorf("%w: team names are required", ErrInvalidConfig)
	case strings.EqualFold(c.TeamOneName, c.TeamTwoName):
		return fmt.Errorf("%w: team names must differ", ErrInvalidConfig)
	case c.TotalOvers <= 0:
		return fmt.Errorf("%w: total overs must be positive, got %d", ErrInvalidConfig, c.TotalOvers)
	}
	if !c.WideRule.valid() {
		return fmt.Errorf("%w: wide rule %q", ErrInvalidConfig, c.WideRule)
	}
	if !c.NoBallRule.valid() {
		return fmt.Errorf("%w: no-ball rule %q", ErrInvalidConfig, c.NoBallRule)
	}
	return nil
}

func (r Rule) valid() bool { return r == RuleRun || r == RuleReball }

func newInnings(batting, bowling string) Innings {
	return Innings{
		BattingTeam: batting,
		BowlingTeam: bowling,
		History:     []string{},
	}
}

// Clone returns a deep copy sharing no slices or pointers with m.
func (m Match) Clone() Match {
	out := m
	out.InningsOne = m.InningsOne.clone()
	if m.InningsTwo != nil {
		two := m.InningsTwo.clone()
		out.InningsTwo = &two
	}
	return out
}

func (in Innings) clone() Innings {
	out := in
	if in.History != nil {
		out.History = make([]string, len(in.History))
		copy(out.History, in.History)
	}
	return out
}

// Active returns the innings currently being scored, or nil if innings 2 is
// current but was never initialised.
func (m *Match) Active() *Innings {
	if m.CurrentInnings == 2 {
		return m.InningsTwo
	}
	return &m.InningsOne
}

// ApplyBall scores one delivery against the active innings.
//
// Returns the next state and accepted=true, or m unchanged and accepted=false
// when the innings is locked (overs done, all out, target reached).
// A malformed ball returns an error wrapping ErrInvalidBall.
func ApplyBall(m Match, b Ball) (Match, bool, error) {
	if err := b.Validate(); err != nil {
		return m, false, err
	}
	if m.Active() == nil || m.Locked() {
		return m, false, nil
	}

	next := m.Clone()
	in := next.Active()

	runs := b.Runs
	legal := true
	wicket := b.Wicket

	switch b.Kind {
	case KindLegal:
	case KindWide:
		runs++
		legal = next.Config.WideRule == RuleRun
		in.Extras.Wides++
	case KindNoBall:
		runs++
		legal = next.Config.NoBallRule == RuleRun
		in.Extras.NoBalls++
	case KindWicket:
		wicket = true
	default:
		return m, false, fmt.Errorf("%w: unknown kind %q", ErrInvalidBall, b.Kind)
	}

	in.TotalRuns += runs
	if legal {
		in.BallsBowled++
	}
	if wicket {
		in.Wickets++
	}
	in.History = append(in.History, Symbol(b))
	return next, true, nil
}

// EndInnings closes the active innings.
// From innings 1 it moves to innings 2, creating the second ledger with the
// sides swapped if it does not exist yet. From innings 2 it completes the match.
func EndInnings(m Match) Match {
	next := m.Clone()
	if next.CurrentInnings == 1 {
		next.CurrentInnings = 2
		if next.InningsTwo == nil {
			two := newInnings(next.InningsOne.BowlingTeam, next.InningsOne.BattingTeam)
			next.InningsTwo = &two
		}
		return next
	}
	next.Status = StatusCompleted
	return next
}
