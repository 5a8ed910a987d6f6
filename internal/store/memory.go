// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for tests and local runs
// where durability is not required (STORAGE=memory).
//
// Characteristics:
//   - Holds one deep copy of the match; callers never share memory with it.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/cricket-scorer/internal/match"
)

// Memory is a single-cell Store implementation.
type Memory struct {
	mu  sync.RWMutex // guards cur
	cur *match.Match
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{}
}

// Save replaces the held snapshot with a copy of m.
func (s *Memory) Save(ctx context.Context, m match.Match) error {
	c := m.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = &c
	return nil
}

// Load returns a copy of the held snapshot or ErrNotFound.
func (s *Memory) Load(ctx context.Context) (match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return match.Match{}, ErrNotFound
	}
	return s.cur.Clone(), nil
}

// Clear drops the held snapshot.
func (s *Memory) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
	return nil
}
