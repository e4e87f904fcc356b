// Package scores persists finished sessions in a sqlite leaderboard.
package scores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	player   TEXT    NOT NULL,
	points   INTEGER NOT NULL,
	reason   TEXT    NOT NULL,
	ended_at INTEGER NOT NULL -- unix seconds
);
CREATE INDEX IF NOT EXISTS idx_points ON scores (points DESC, ended_at ASC);
`

const insert = `INSERT INTO scores (player, points, reason, ended_at) VALUES (?, ?, ?, ?);`
const queryTop = `SELECT player, points, reason, ended_at FROM scores ORDER BY points DESC, ended_at ASC, id ASC LIMIT ?;`

// Entry is one leaderboard row.
type Entry struct {
	Player  string
	Points  int
	Reason  string
	EndedAt time.Time
}

// Store is a sqlite-backed leaderboard. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the leaderboard database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open scores db %s: %w", path, err)
	}
	// sqlite allows a single writer; serialize through one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scores schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the final points of a finished session.
func (s *Store) Record(ctx context.Context, player string, points int, reason string) error {
	if _, err := s.db.ExecContext(ctx, insert, player, points, reason, s.now().Unix()); err != nil {
		return fmt.Errorf("record score for %q: %w", player, err)
	}
	return nil
}

// Top returns the n best sessions, earliest first among equal points.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, queryTop, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ended int64
		if err := rows.Scan(&e.Player, &e.Points, &e.Reason, &ended); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		e.EndedAt = time.Unix(ended, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read top scores: %w", err)
	}
	return entries, nil
}
