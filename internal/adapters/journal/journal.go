// Package journal persists the immutable audit trail of applied votes.
//
// The journal is written off the request path by the worker pool; vote
// commit latency and success never depend on it.
package journal

import (
	"context"
	"sync"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// Journal appends applied votes to a durable (or test) sink.
type Journal interface {
	// Append records one applied vote.
	Append(ctx context.Context, v model.Vote) error

	// Count returns the number of appended records.
	Count(ctx context.Context) (int64, error)

	// Close releases journal resources.
	Close() error
}

// Default bound for the in-memory journal.
const defaultMemoryCap = 10_000

// MemoryJournal keeps the most recent votes in a bounded ring. It backs the
// memory store configuration and tests; totals keep counting past the cap.
type MemoryJournal struct {
	mu    sync.Mutex
	votes []model.Vote
	cap   int
	total int64
}

// MemoryOption applies a configuration option to the MemoryJournal.
type MemoryOption func(*MemoryJournal)

// WithMemoryCap bounds how many recent votes are retained.
func WithMemoryCap(n int) MemoryOption {
	return func(j *MemoryJournal) {
		if n > 0 {
			j.cap = n
		}
	}
}

// NewMemoryJournal creates an in-memory journal.
func NewMemoryJournal(opts ...MemoryOption) *MemoryJournal {
	j := &MemoryJournal{cap: defaultMemoryCap}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append records one applied vote.
func (j *MemoryJournal) Append(_ context.Context, v model.Vote) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.votes = append(j.votes, v)
	if len(j.votes) > j.cap {
		j.votes = j.votes[len(j.votes)-j.cap:]
	}
	j.total++
	return nil
}

// Count returns the number of appended records.
func (j *MemoryJournal) Count(_ context.Context) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.total, nil
}

// Recent returns up to n of the most recently appended votes, newest last.
func (j *MemoryJournal) Recent(n int) []model.Vote {
	j.mu.Lock()
	defer j.mu.Unlock()

	if n <= 0 || n > len(j.votes) {
		n = len(j.votes)
	}
	out := make([]model.Vote, n)
	copy(out, j.votes[len(j.votes)-n:])
	return out
}

// Close releases journal resources. The in-memory journal holds none.
func (j *MemoryJournal) Close() error {
	return nil
}
