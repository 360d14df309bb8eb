package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/nvoss/modelarena/internal/domain/model"
)

const voteSchema = `
CREATE TABLE IF NOT EXISTS votes (
	id        TEXT PRIMARY KEY,
	winner_id TEXT NOT NULL,
	loser_id  TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_votes_timestamp ON votes(timestamp);
`

// SQLiteJournal writes applied votes to a SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal opens (creating if needed) the vote journal at path.
func NewSQLiteJournal(ctx context.Context, path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open vote journal: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, voteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// Append records one applied vote.
func (j *SQLiteJournal) Append(ctx context.Context, v model.Vote) error {
	if _, err := j.db.ExecContext(ctx,
		`INSERT INTO votes (id, winner_id, loser_id, timestamp) VALUES (?, ?, ?, ?)`,
		v.ID, v.WinnerID, v.LoserID, v.Timestamp.UTC()); err != nil {
		return fmt.Errorf("append vote: %w", err)
	}
	return nil
}

// Count returns the number of appended records.
func (j *SQLiteJournal) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return count, nil
}

// Close releases the database handle.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
