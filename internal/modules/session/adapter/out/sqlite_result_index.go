package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quizforge/internal/modules/session/domain"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteResultIndex struct {
	db *sql.DB
}

func NewSQLiteResultIndex(dbPath string) (*SQLiteResultIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteResultIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

func (s *SQLiteResultIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS results (
  session_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  test_path TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  correct INTEGER NOT NULL,
  answered INTEGER NOT NULL,
  total INTEGER NOT NULL,
  seconds_used INTEGER NOT NULL,
  budget INTEGER NOT NULL,
  expired INTEGER NOT NULL,
  log_path TEXT
);
CREATE INDEX IF NOT EXISTS results_finished_at ON results(finished_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create results table: %w", err)
	}
	return nil
}

func (s *SQLiteResultIndex) Record(ctx context.Context, result domain.Result) error {
	const stmt = `
INSERT INTO results (session_id, name, test_path, finished_at, correct, answered, total, seconds_used, budget, expired, log_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
  name=excluded.name,
  test_path=excluded.test_path,
  finished_at=excluded.finished_at,
  correct=excluded.correct,
  answered=excluded.answered,
  total=excluded.total,
  seconds_used=excluded.seconds_used,
  budget=excluded.budget,
  expired=excluded.expired,
  log_path=excluded.log_path;
`
	expired := 0
	if result.Expired {
		expired = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		result.SessionID,
		result.Name,
		result.TestPath,
		result.FinishedAt.UTC().Format(timeLayout),
		result.Correct,
		result.Answered,
		result.Total,
		result.SecondsUsed,
		result.Budget,
		expired,
		result.LogPath,
	)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// List returns the newest results first; limit <= 0 returns all of them.
func (s *SQLiteResultIndex) List(ctx context.Context, limit int) ([]domain.Result, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, name, test_path, finished_at, correct, answered, total, seconds_used, budget, expired, COALESCE(log_path, '')
FROM results
ORDER BY finished_at DESC, session_id
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	out := []domain.Result{}
	for rows.Next() {
		var (
			r        domain.Result
			finished string
			expired  int
		)
		if err := rows.Scan(&r.SessionID, &r.Name, &r.TestPath, &finished, &r.Correct, &r.Answered, &r.Total, &r.SecondsUsed, &r.Budget, &expired, &r.LogPath); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		at, err := time.Parse(timeLayout, finished)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
		}
		r.FinishedAt = at.Local()
		r.Expired = expired == 1
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (s *SQLiteResultIndex) Close() error {
	return s.db.Close()
}
