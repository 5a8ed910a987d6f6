// internal/match/policy.go
//
// Read-only predicates derived from a Match: target, lockout and result.
// They are recomputed from the counters on every call and never cached.

package match

import "fmt"

// Target is the score the second innings must reach to win. It is only
// defined once the second innings exists.
func (m Match) Target() (int, bool) {
	if m.InningsTwo == nil {
		return 0, false
	}
	return m.InningsOne.TotalRuns + 1, true
}

// Chased reports whether the side batting second has reached the target.
// Scoring is locked from that point even before the innings is ended.
func (m Match) Chased() bool {
	target, ok := m.Target()
	return ok && m.CurrentInnings == 2 && m.InningsTwo.TotalRuns >= target
}

// Lock explains why the active innings cannot take more balls.
type Lock struct {
	OversCompleted bool `json:"oversCompleted"`
	AllOut         bool `json:"allOut"`
	TargetReached  bool `json:"targetReached"`
}

// Any reports whether at least one lock condition holds.
func (l Lock) Any() bool { return l.OversCompleted || l.AllOut || l.TargetReached }

// LockState evaluates each lock condition for the active innings.
func (m Match) LockState() Lock {
	in := m.Active()
	if in == nil {
		return Lock{}
	}
	return Lock{
		OversCompleted: in.BallsBowled >= m.Config.MaxBalls(),
		AllOut:         in.Wickets >= MaxWickets,
		TargetReached:  m.Chased(),
	}
}

// Locked reports whether the active innings is closed to further scoring.
func (m Match) Locked() bool { return m.LockState().Any() }

// Result is the outcome of a completed match.
type Result struct {
	Winner  string `json:"winner,omitempty"` // empty on a tie
	Tied    bool   `json:"tied"`
	TeamOne string `json:"teamOne"`
	TeamTwo string `json:"teamTwo"`
	RunsOne int    `json:"runsOne"`
	RunsTwo int    `json:"runsTwo"`
}

// Result compares the two totals once the match is completed. ok is false
// while the match is live or if the second innings never existed.
func (m Match) Result() (Result, bool) {
	if m.Status != StatusCompleted || m.InningsTwo == nil {
		return Result{}, false
	}
	r := Result{
		TeamOne: m.InningsOne.BattingTeam,
		TeamTwo: m.InningsTwo.BattingTeam,
		RunsOne: m.InningsOne.TotalRuns,
		RunsTwo: m.InningsTwo.TotalRuns,
	}
	switch {
	case r.RunsOne > r.RunsTwo:
		r.Winner = r.TeamOne
	case r.RunsTwo > r.RunsOne:
		r.Winner = r.TeamTwo
	default:
		r.Tied = true
	}
	return r, true
}

// Summary is the one-line result text shown on the completion screen.
func (r Result) Summary() string {
	if r.Tied {
		return "Match Tied!"
	}
	return fmt.Sprintf("%s Wins!", r.Winner)
}

// Overs renders balls bowled in cricket notation, e.g. 20 balls → "3.2".
func (in Innings) Overs() string {
	return fmt.Sprintf("%d.%d", in.BallsBowled/BallsPerOver, in.BallsBowled%BallsPerOver)
}
