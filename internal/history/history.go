// Package history handles SQLite persistence of completed sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typr/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			mode_key TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			raw_wpm REAL NOT NULL,
			net_wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			consistency REAL NOT NULL,
			errors INTEGER NOT NULL,
			chars_typed INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			words INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_mode_key ON sessions(mode_key);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a completed session result.
func (s *Store) InsertResult(ctx context.Context, res model.SessionResult) (int64, error) {
	r, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (mode_key, ended_at, raw_wpm, net_wpm, accuracy, consistency, errors, chars_typed, correct_chars, words, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ModeKey,
		res.Timestamp.Format(time.RFC3339Nano),
		res.RawWPM,
		res.NetWPM,
		res.Accuracy,
		res.Consistency,
		res.Errors,
		res.CharsTyped,
		res.CorrectChars,
		res.Words,
		res.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	return r.LastInsertId()
}

// ListResults returns stored sessions matching the filter, oldest first.
func (s *Store) ListResults(ctx context.Context, filter model.HistoryFilter) ([]model.HistoryRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.ModeKey != "" {
		clauses = append(clauses, "mode_key = ?")
		args = append(args, filter.ModeKey)
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, mode_key, ended_at, raw_wpm, net_wpm, accuracy, consistency, errors, chars_typed, correct_chars, words, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		var endedAt string
		var durationMs int64
		if err := rows.Scan(
			&rec.ID,
			&rec.Result.ModeKey,
			&endedAt,
			&rec.Result.RawWPM,
			&rec.Result.NetWPM,
			&rec.Result.Accuracy,
			&rec.Result.Consistency,
			&rec.Result.Errors,
			&rec.Result.CharsTyped,
			&rec.Result.CorrectChars,
			&rec.Result.Words,
			&durationMs,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		rec.Result.Timestamp = parsed
		rec.Result.Elapsed = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(records) > filter.Last {
		records = records[len(records)-filter.Last:]
	}
	return records, nil
}
