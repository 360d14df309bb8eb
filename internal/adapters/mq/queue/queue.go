// Package queue provides the bounded in-memory buffer between vote commit
// and the asynchronous journal writers.
package queue

import (
	"context"
	"sync"

	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/pkg/metrics"
)

// Default queue configuration constants.
const defaultCapacity = 10_000

// Queue provides non-blocking enqueue and channel-based dequeue semantics
// for applied votes.
type Queue interface {
	// Enqueue adds a vote to the queue.
	// Returns false if the queue is full or closed; callers treat a false
	// return as an audit-record drop, never as a vote failure.
	Enqueue(ctx context.Context, v model.Vote) bool

	// Dequeue returns the channel workers consume from. The channel is
	// closed when the queue is closed and drained.
	Dequeue() <-chan model.Vote

	// Len returns the current number of queued votes.
	Len() int

	// Close stops accepting new votes and lets consumers drain the rest.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	votes    chan model.Vote
	capacity int

	mu     sync.RWMutex
	closed bool
}

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity sets the maximum number of buffered votes.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.votes = make(chan model.Vote, q.capacity)
	metrics.UpdateJournalQueueSize(0)
	return q
}

// Enqueue adds a vote to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, v model.Vote) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.votes <- v:
		metrics.UpdateJournalQueueSize(len(q.votes))
		return true
	case <-ctx.Done():
		return false
	default:
		return false // queue is full
	}
}

// Dequeue returns the consumer channel.
func (q *InMemoryQueue) Dequeue() <-chan model.Vote {
	return q.votes
}

// Len returns the current number of queued votes.
func (q *InMemoryQueue) Len() int {
	size := len(q.votes)
	metrics.UpdateJournalQueueSize(size)
	return size
}

// Close stops accepting new votes. Buffered votes remain readable until
// drained, after which the dequeue channel reports closed.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.votes)
	q.closed = true
	return nil
}
