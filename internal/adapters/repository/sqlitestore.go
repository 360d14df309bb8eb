package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/internal/domain/rating"
	"github.com/nvoss/modelarena/pkg/metrics"
)

const defaultVoteRetries = 3

const schema = `
CREATE TABLE IF NOT EXISTS models (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	provider     TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	image_url    TEXT NOT NULL DEFAULT '',
	capabilities TEXT NOT NULL DEFAULT '[]',
	wins         INTEGER NOT NULL DEFAULT 0,
	losses       INTEGER NOT NULL DEFAULT 0,
	rating       REAL NOT NULL,
	created_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);

INSERT OR IGNORE INTO meta (key, value) VALUES ('battles_completed', 0);
`

// SQLiteStore is a durable Store backed by a single SQLite file. Each vote
// commits in one IMMEDIATE transaction so the two affected rows and the
// battle counter change together or not at all.
type SQLiteStore struct {
	db          *sql.DB
	voteRetries int
}

// SQLiteOption applies a configuration option to the SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithVoteRetries bounds the internal retries on lock contention before a
// vote surfaces ErrConflict.
func WithVoteRetries(n int) SQLiteOption {
	return func(s *SQLiteStore) {
		if n > 0 {
			s.voteRetries = n
		}
	}
}

// NewSQLiteStore opens (creating if needed) the registry database at path.
func NewSQLiteStore(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}

	s := &SQLiteStore{
		db:          db,
		voteRetries: defaultVoteRetries,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init registry schema: %w", err)
	}
	return s, nil
}

// Get returns the model with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Model, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, provider, description, image_url, capabilities,
		        wins, losses, rating, created_at
		 FROM models WHERE id = ?`, id)
	return scanModel(row)
}

// List returns the full catalog in unspecified order.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Model, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, provider, description, image_url, capabilities,
		        wins, losses, rating, created_at
		 FROM models`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var out []model.Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

// Leaderboard returns the catalog in ranked order. Ordering happens in Go so
// the memory and SQLite stores share one comparator.
func (s *SQLiteStore) Leaderboard(ctx context.Context) ([]model.Model, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOpLatency("leaderboard", float64(time.Since(start).Milliseconds()))
	}()

	models, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sortLeaderboard(models)
	return models, nil
}

// SeedIfEmpty inserts models when the registry holds none.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context, models []model.Model) (inserted int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM models`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count models: %w", err)
	}
	if count > 0 {
		return 0, tx.Commit()
	}

	for _, m := range models {
		caps, jerr := json.Marshal(m.Capabilities)
		if jerr != nil {
			err = fmt.Errorf("encode capabilities: %w", jerr)
			return 0, err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO models
			   (id, name, provider, description, image_url, capabilities,
			    wins, losses, rating, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Provider, m.Description, m.ImageURL, string(caps),
			m.Wins, m.Losses, m.Rating, m.CreatedAt.UTC()); err != nil {
			return 0, fmt.Errorf("insert model %s: %w", m.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(models), nil
}

// ApplyVote commits one comparison outcome in a single transaction, retrying
// a bounded number of times when another writer holds the database lock.
func (s *SQLiteStore) ApplyVote(ctx context.Context, winnerID, loserID string, rate rating.Func) (model.Vote, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOpLatency("apply_vote", float64(time.Since(start).Milliseconds()))
	}()

	var lastErr error
	for attempt := 0; attempt < s.voteRetries; attempt++ {
		vote, err := s.applyVoteOnce(ctx, winnerID, loserID, rate)
		if err == nil || !isBusy(err) {
			return vote, err
		}
		lastErr = err
	}
	return model.Vote{}, fmt.Errorf("%w: %v", ErrConflict, lastErr)
}

func (s *SQLiteStore) applyVoteOnce(ctx context.Context, winnerID, loserID string, rate rating.Func) (vote model.Vote, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Vote{}, fmt.Errorf("begin vote: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var winnerRating, loserRating float64
	if err = tx.QueryRowContext(ctx, `SELECT rating FROM models WHERE id = ?`, winnerID).Scan(&winnerRating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return model.Vote{}, err
	}
	if err = tx.QueryRowContext(ctx, `SELECT rating FROM models WHERE id = ?`, loserID).Scan(&loserRating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return model.Vote{}, err
	}

	newWinner, newLoser := rate(winnerRating, loserRating)

	if _, err = tx.ExecContext(ctx,
		`UPDATE models SET wins = wins + 1, rating = ? WHERE id = ?`, newWinner, winnerID); err != nil {
		return model.Vote{}, fmt.Errorf("update winner: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE models SET losses = losses + 1, rating = ? WHERE id = ?`, newLoser, loserID); err != nil {
		return model.Vote{}, fmt.Errorf("update loser: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE meta SET value = value + 1 WHERE key = 'battles_completed'`); err != nil {
		return model.Vote{}, fmt.Errorf("update battle counter: %w", err)
	}

	vote = model.Vote{
		ID:        uuid.NewString(),
		WinnerID:  winnerID,
		LoserID:   loserID,
		Timestamp: time.Now().UTC(),
	}
	if err = tx.Commit(); err != nil {
		return model.Vote{}, fmt.Errorf("commit vote: %w", err)
	}
	return vote, nil
}

// Count returns the registry size.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM models`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// BattlesCompleted returns the total number of committed votes.
func (s *SQLiteStore) BattlesCompleted(ctx context.Context) int64 {
	var count int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'battles_completed'`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanTarget is satisfied by *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanModel(row scanTarget) (model.Model, error) {
	var (
		m    model.Model
		caps string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Provider, &m.Description, &m.ImageURL,
		&caps, &m.Wins, &m.Losses, &m.Rating, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Model{}, ErrNotFound
	}
	if err != nil {
		return model.Model{}, fmt.Errorf("scan model: %w", err)
	}
	if err := json.Unmarshal([]byte(caps), &m.Capabilities); err != nil {
		return model.Model{}, fmt.Errorf("decode capabilities: %w", err)
	}
	return m.WithWinRate(), nil
}

// isBusy reports whether err looks like SQLite lock contention.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlite_busy") || strings.Contains(msg, "database is locked")
}
