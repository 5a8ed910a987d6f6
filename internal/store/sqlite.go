// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Reading/writing the live match snapshot row.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/robalobadob/cricket-scorer/assets"
	"github.com/robalobadob/cricket-scorer/internal/match"
)

// SQLite persists the live match in the match_snapshots table.
type SQLite struct {
	db  *sql.DB
	key string
	log zerolog.Logger
}

// OpenSQLite opens (and creates if missing) the database at path, applies
// migrations and returns a Store keyed by CurrentKey.
func OpenSQLite(ctx context.Context, path string, logger zerolog.Logger) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &SQLite{db: db, key: CurrentKey, log: logger.With().Str("component", "sqlite").Logger()}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// openDB ensures the parent directory exists and opens the file with a busy
// timeout and WAL journaling.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded scripts not yet listed in _migrations, each
// in its own transaction.
func (s *SQLite) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			s.log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		s.log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Load reads and decodes the snapshot row.
func (s *SQLite) Load(ctx context.Context) (match.Match, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM match_snapshots WHERE key=?`, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return match.Match{}, ErrNotFound
	}
	if err != nil {
		return match.Match{}, fmt.Errorf("load snapshot: %w", err)
	}
	return Decode([]byte(raw))
}

// Save upserts the snapshot row.
func (s *SQLite) Save(ctx context.Context, m match.Match) error {
	b, err := Encode(m)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO match_snapshots (key, snapshot, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET snapshot=excluded.snapshot, updated_at=excluded.updated_at`,
		s.key, string(b), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Clear deletes the snapshot row.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM match_snapshots WHERE key=?`, s.key); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }
