// Package service provides the core arena service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nvoss/modelarena/internal/adapters/journal"
	votequeue "github.com/nvoss/modelarena/internal/adapters/mq/queue"
	workerpool "github.com/nvoss/modelarena/internal/adapters/mq/worker"
	"github.com/nvoss/modelarena/internal/adapters/repository"
	"github.com/nvoss/modelarena/internal/domain/catalog"
	"github.com/nvoss/modelarena/internal/domain/matchmaker"
	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/internal/domain/rating"
	"github.com/nvoss/modelarena/pkg/logger"
	"github.com/nvoss/modelarena/pkg/metrics"
)

// Vote validation sentinel kinds.
var (
	ErrSelfVote  = errors.New("winner and loser must differ")
	ErrMissingID = errors.New("winner_id and loser_id are required")
)

// Service wires the registry, matchmaker, rating engine and the async vote
// journal pipeline behind the HTTP API.
type Service struct {
	mu sync.Mutex

	// Core components. Any left nil before Start is built with defaults.
	store   repository.Store
	engine  *rating.Engine
	matcher *matchmaker.Matchmaker
	journal journal.Journal
	queue   votequeue.Queue
	pool    *workerpool.Pool

	// Configuration.
	queueSize   int
	workerCount int
	seedModels  []model.Model

	// State.
	started bool
	cancel  context.CancelFunc

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects the registry backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithJournal injects the vote audit sink.
func WithJournal(j journal.Journal) Option {
	return func(s *Service) {
		if j != nil {
			s.journal = j
		}
	}
}

// WithRatingEngine injects the pairwise rating engine.
func WithRatingEngine(e *rating.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithMatchmaker injects the pair selector.
func WithMatchmaker(m *matchmaker.Matchmaker) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithJournalQueueSize bounds the audit queue.
func WithJournalQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithJournalWorkers sets the number of journal writer goroutines.
func WithJournalWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithSeedCatalog overrides the default seed catalog.
func WithSeedCatalog(models []model.Model) Option {
	return func(s *Service) {
		if len(models) > 0 {
			s.seedModels = models
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:   10_000,
		workerCount: 2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds missing components with defaults and launches the journal
// writer pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Get().Named("arena")
	}
	if s.engine == nil {
		s.engine = rating.New()
	}
	if s.matcher == nil {
		s.matcher = matchmaker.New()
	}
	if s.store == nil {
		s.store = repository.NewMemStore(ctx)
		s.log.Info(ctx, "using in-memory registry")
	}
	if s.journal == nil {
		s.journal = journal.NewMemoryJournal()
	}
	if s.seedModels == nil {
		s.seedModels = catalog.Default(s.engine.Base())
	}

	s.queue = votequeue.NewInMemoryQueue(votequeue.WithCapacity(s.queueSize))

	poolCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.pool = workerpool.NewPool(s.queue, s.journal,
		workerpool.WithWorkerCount(s.workerCount),
		workerpool.WithLogger(s.log.Named("journal")),
	)
	s.pool.Start(poolCtx)

	s.started = true
	s.log.Info(ctx, "arena service started",
		logger.Int("journal_workers", s.workerCount),
		logger.Int("journal_queue_size", s.queueSize),
	)
	return nil
}

// Stop drains the journal pipeline and releases resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.log.Info(ctx, "stopping arena service...")

	// Closing the queue lets workers drain buffered audit records before
	// the pool exits.
	_ = s.queue.Close()
	s.pool.Wait()
	s.cancel()

	if err := s.journal.Close(); err != nil {
		s.log.Error(ctx, "journal close failed", logger.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.log.Error(ctx, "store close failed", logger.Error(err))
	}

	s.started = false
	s.log.Info(ctx, "arena service stopped")
}

// Started reports whether Start completed.
func (s *Service) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// SeedIfEmpty populates the registry with the seed catalog when empty.
// Invoking it on a populated registry is a successful no-op.
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	inserted, err := s.store.SeedIfEmpty(ctx, s.seedModels)
	if err != nil {
		return 0, fmt.Errorf("seed registry: %w", err)
	}
	if inserted > 0 {
		metrics.RecordSeedInserted(inserted)
		s.log.Info(ctx, "seeded registry", logger.Int("models", inserted))
	}
	metrics.UpdateCatalogSize(s.store.Count(ctx))
	return inserted, nil
}

// Battle selects two distinct models for a new comparison. It has no side
// effects on registry state.
func (s *Service) Battle(ctx context.Context) (model.Battle, error) {
	models, err := s.store.List(ctx)
	if err != nil {
		return model.Battle{}, fmt.Errorf("load catalog: %w", err)
	}
	battle, err := s.matcher.Next(ctx, models)
	if err != nil {
		return model.Battle{}, err
	}
	metrics.RecordBattleServed()
	return battle, nil
}

// Vote validates and applies one comparison outcome. Validation order:
// ids present, winner != loser, then existence (checked transactionally by
// the store). On success the audit record is enqueued for the journal;
// queue backpressure drops the record and never fails the vote.
func (s *Service) Vote(ctx context.Context, winnerID, loserID string) error {
	winnerID = strings.TrimSpace(winnerID)
	loserID = strings.TrimSpace(loserID)

	if winnerID == "" || loserID == "" {
		metrics.RecordVoteError("missing_id")
		return ErrMissingID
	}
	if winnerID == loserID {
		metrics.RecordVoteError("self_vote")
		return ErrSelfVote
	}

	vote, err := s.store.ApplyVote(ctx, winnerID, loserID, s.engine.Update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			metrics.RecordVoteError("not_found")
		case errors.Is(err, repository.ErrConflict):
			metrics.RecordVoteError("conflict")
		default:
			metrics.RecordVoteError("internal")
		}
		return err
	}

	metrics.RecordVoteApplied()
	if !s.queue.Enqueue(ctx, vote) {
		metrics.RecordJournalDrop()
		s.log.Warn(ctx, "audit record dropped on backpressure",
			logger.String("vote_id", vote.ID))
	}

	s.log.Debug(ctx, "vote applied",
		logger.String("winner_id", winnerID),
		logger.String("loser_id", loserID),
	)
	return nil
}

// Models returns the full catalog in unspecified order.
func (s *Service) Models(ctx context.Context) ([]model.Model, error) {
	return s.store.List(ctx)
}

// Leaderboard returns the catalog ordered by rating desc, win rate desc,
// name asc.
func (s *Service) Leaderboard(ctx context.Context) ([]model.Model, error) {
	return s.store.Leaderboard(ctx)
}

// Stats summarizes arena activity.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	board, err := s.store.Leaderboard(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("load leaderboard: %w", err)
	}

	stats := model.Stats{
		BattlesCompleted: s.store.BattlesCompleted(ctx),
		TotalModels:      len(board),
	}
	if len(board) > 0 {
		stats.TopModel = board[0].Name
	}
	return stats, nil
}

// RefreshMetrics pushes registry gauges; invoked periodically from main.
func (s *Service) RefreshMetrics(ctx context.Context) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}

	metrics.UpdateCatalogSize(s.store.Count(ctx))
	metrics.UpdateBattlesCompleted(s.store.BattlesCompleted(ctx))
	metrics.UpdateJournalQueueSize(s.queue.Len())

	if board, err := s.store.Leaderboard(ctx); err == nil && len(board) > 0 {
		metrics.UpdateTopRating(board[0].Rating)
	}
}
