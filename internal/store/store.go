// Package store handles SQLite persistence of saved essays.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"essaydesk/internal/types"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when an essay id does not exist.
var ErrNotFound = errors.New("essay not found")

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for essays.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS essays (
			id INTEGER PRIMARY KEY,
			original_text TEXT NOT NULL,
			corrected_text TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			paragraph_count INTEGER NOT NULL,
			backspace_count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_essays_created_at ON essays(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_essays_session ON essays(session_id, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Insert stores an essay and returns its id. A zero Timestamp is set to now.
func (s *Store) Insert(ctx context.Context, e types.Essay) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO essays (original_text, corrected_text, session_id, created_at, word_count, paragraph_count, backspace_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.OriginalText,
		e.CorrectedText,
		e.SessionID,
		formatTime(e.Timestamp),
		e.WordCount,
		e.ParagraphCount,
		e.BackspaceCount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert essay: %w", err)
	}
	return res.LastInsertId()
}

// Get returns a single essay by id.
func (s *Store) Get(ctx context.Context, id int64) (types.Essay, error) {
	row := s.db.QueryRowContext(ctx, selectEssay+` WHERE id = ?`, id)
	e, err := scanEssay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Essay{}, ErrNotFound
	}
	return e, err
}

// Query selects essays relative to a cutoff time, newest first.
type Query struct {
	Cutoff time.Time
	// Before lists essays created strictly before Cutoff instead of at or
	// after it.
	Before    bool
	SessionID string
}

// List returns essays matching q, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]types.Essay, error) {
	op := ">="
	if q.Before {
		op = "<"
	}
	query := selectEssay + ` WHERE created_at ` + op + ` ?`
	args := []any{formatTime(q.Cutoff)}
	if q.SessionID != "" {
		query += ` AND session_id = ?`
		args = append(args, q.SessionID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list essays: %w", err)
	}
	defer rows.Close()

	var out []types.Essay
	for rows.Next() {
		e, err := scanEssay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of stored essays.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM essays`).Scan(&n)
	return n, err
}

// DeleteOlderThan removes essays created before cutoff and reports how many
// were removed.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM essays WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete essays: %w", err)
	}
	return res.RowsAffected()
}

const selectEssay = `SELECT id, original_text, corrected_text, session_id, created_at, word_count, paragraph_count, backspace_count FROM essays`

type scanner interface {
	Scan(dest ...any) error
}

func scanEssay(row scanner) (types.Essay, error) {
	var (
		e       types.Essay
		created string
	)
	if err := row.Scan(&e.ID, &e.OriginalText, &e.CorrectedText, &e.SessionID, &created,
		&e.WordCount, &e.ParagraphCount, &e.BackspaceCount); err != nil {
		return types.Essay{}, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return types.Essay{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	e.Timestamp = ts
	return e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
