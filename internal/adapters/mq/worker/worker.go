// Package worker drains the vote queue into the journal asynchronously.
package worker

import (
	"context"
	"strconv"
	"sync"

	"github.com/nvoss/modelarena/internal/adapters/journal"
	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/pkg/logger"
	"github.com/nvoss/modelarena/pkg/metrics"
)

// Default worker configuration constants.
const defaultWorkerCount = 2

// Source defines how workers receive applied votes.
type Source interface {
	Dequeue() <-chan model.Vote
}

// Pool runs a fixed set of goroutines that persist applied votes to the
// journal. A failed append is logged and counted; the vote itself has
// already committed in the registry and is never rolled back.
type Pool struct {
	count   int
	source  Source
	journal journal.Journal
	log     logger.Logger

	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkerCount sets the number of journal writer goroutines.
func WithWorkerCount(count int) Option {
	return func(p *Pool) {
		if count > 0 {
			p.count = count
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(log logger.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPool creates a journal writer pool with configuration options.
func NewPool(source Source, j journal.Journal, opts ...Option) *Pool {
	p := &Pool{
		count:   defaultWorkerCount,
		source:  source,
		journal: j,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get().Named("journal-worker")
	}
	return p
}

// Start launches the workers. They run until the source channel closes or
// ctx is canceled.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true
	metrics.UpdateWorkerCount(p.count)

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.run(ctx, strconv.Itoa(i))
	}
}

// Wait blocks until all workers have drained and exited. Close the source
// queue first.
func (p *Pool) Wait() {
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context, name string) {
	defer p.wg.Done()

	votes := p.source.Dequeue()
	for {
		select {
		case <-ctx.Done():
			// Drain whatever is already buffered before exiting so shutdown
			// does not lose committed audit records.
			for {
				select {
				case v, ok := <-votes:
					if !ok {
						return
					}
					p.append(context.Background(), name, v)
				default:
					return
				}
			}
		case v, ok := <-votes:
			if !ok {
				return
			}
			p.append(ctx, name, v)
		}
	}
}

func (p *Pool) append(ctx context.Context, name string, v model.Vote) {
	if err := p.journal.Append(ctx, v); err != nil {
		metrics.RecordJournalError()
		p.log.Error(ctx, "journal append failed",
			logger.String("worker", name),
			logger.String("vote_id", v.ID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordJournalAppend()
}
