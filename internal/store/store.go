// internal/store/store.go
//
// Persistence boundary for the live match.
// Exactly one match is in flight, stored under a single well-known key.
//
// Implementations:
//   - memory (this package): process-local, used in tests and STORAGE=memory.
//   - SQLite (sqlite.go):    durable snapshot row, the default.
//
// Snapshots are JSON using the field names of match.Match. There is no
// schema versioning: a snapshot that no longer decodes into a coherent match
// is reported as ErrCorruptSnapshot and callers treat it as "no match".

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/cricket-scorer/internal/match"
)

// CurrentKey is the identifier the live match is persisted under.
const CurrentKey = "current"

var (
	// ErrNotFound means no match has been persisted.
	ErrNotFound = errors.New("store: no match persisted")
	// ErrCorruptSnapshot means a persisted snapshot could not be decoded.
	ErrCorruptSnapshot = errors.New("store: corrupt snapshot")
)

// Store defines the persistence interface for the live match.
type Store interface {
	// Load returns the last persisted match, or ErrNotFound.
	Load(ctx context.Context) (match.Match, error)

	// Save persists m, replacing any previous snapshot.
	Save(ctx context.Context, m match.Match) error

	// Clear removes the persisted snapshot, if any.
	Clear(ctx context.Context) error
}

// Encode serialises m into the snapshot format.
func Encode(m match.Match) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a snapshot and checks that it describes a usable match.
func Decode(b []byte) (match.Match, error) {
	var m match.Match
	if err := json.Unmarshal(b, &m); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if err := check(m); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return m, nil
}

func check(m match.Match) error {
	if err := m.Config.Validate(); err != nil {
		return err
	}
	switch m.Status {
	case match.StatusLive, match.StatusCompleted:
	default:
		return fmt.Errorf("unknown status %q", m.Status)
	}
	switch m.CurrentInnings {
	case 1:
	case 2:
		if m.InningsTwo == nil {
			return errors.New("second innings missing")
		}
	default:
		return fmt.Errorf("current innings %d", m.CurrentInnings)
	}
	for _, in := range []*match.Innings{&m.InningsOne, m.InningsTwo} {
		if in == nil {
			continue
		}
		if in.TotalRuns < 0 || in.Wickets < 0 || in.Wickets > match.MaxWickets {
			return fmt.Errorf("innings %s: counters out of range", in.BattingTeam)
		}
		if in.BallsBowled < 0 || in.BallsBowled > m.Config.MaxBalls() {
			return fmt.Errorf("innings %s: %d balls bowled in a %d-over match", in.BattingTeam, in.BallsBowled, m.Config.TotalOvers)
		}
		if in.Extras.Wides < 0 || in.Extras.NoBalls < 0 {
			return fmt.Errorf("innings %s: negative extras", in.BattingTeam)
		}
	}
	return nil
}
