// internal/match/types.go
//
// Core type definitions for the cricket scoring engine.
// Defines:
//   - Rule: how a wide / no-ball is treated against the over (run vs reball).
//   - Config: static match parameters fixed at creation.
//   - Innings: running totals and ball history for one batting side.
//   - Match: whole-match state across both innings.
//
// JSON tags follow the snapshot layout written by the scoring UI so that
// previously persisted matches keep loading.

package match

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// MaxWickets is the number of wickets that ends an innings (all out).
const MaxWickets = 10

// Rule decides whether a penalised delivery counts toward the over.
//   - "run":    the delivery still consumes a legal ball.
//   - "reball": the delivery must be bowled again.
type Rule string

const (
	RuleRun    Rule = "run"
	RuleReball Rule = "reball"
)

// Status is the coarse lifecycle of a match.
type Status string

const (
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Config holds the parameters chosen when the match is created.
// It is read-only for the engine.
type Config struct {
	TeamOneName string `json:"teamOneName"`
	TeamTwoName string `json:"teamTwoName"`
	TotalOvers  int    `json:"totalOvers"`
	WideRule    Rule   `json:"wideRule"`
	NoBallRule  Rule   `json:"noBallRule"`
}

// MaxBalls is the legal-ball limit for one innings.
func (c Config) MaxBalls() int { return c.TotalOvers * BallsPerOver }

// Extras counts penalty deliveries in an innings.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"noBalls"`
}

// Innings is the ledger for one batting turn.
//
// History is not required to match BallsBowled: re-bowled wides and no-balls
// append a symbol without consuming a legal ball.
type Innings struct {
	BattingTeam string   `json:"battingTeam"`
	BowlingTeam string   `json:"bowlingTeam"`
	TotalRuns   int      `json:"totalRuns"`
	Wickets     int      `json:"wickets"`
	BallsBowled int      `json:"ballsBowled"`
	History     []string `json:"history"`
	Extras      Extras   `json:"extras"`
}

// Match is the full scoring state. InningsTwo is nil until the first
// innings is ended.
type Match struct {
	Config         Config   `json:"config"`
	CurrentInnings int      `json:"currentInnings"` // 1 or 2
	InningsOne     Innings  `json:"inningsOne"`
	InningsTwo     *Innings `json:"inningsTwo,omitempty"`
	Status         Status   `json:"status"`
}
