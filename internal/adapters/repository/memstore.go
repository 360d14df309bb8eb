package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/internal/domain/rating"
	"github.com/nvoss/modelarena/pkg/metrics"
)

// MemStore is an in-memory Store. A single RWMutex serializes the two
// mutation paths (SeedIfEmpty, ApplyVote) so a vote touching two models
// commits as one unit and readers always observe a consistent snapshot.
type MemStore struct {
	mu      sync.RWMutex
	models  map[string]model.Model
	battles int64
}

// NewMemStore creates an empty in-memory registry.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		models: make(map[string]model.Model),
	}
}

// Get returns the model with the given id.
func (s *MemStore) Get(_ context.Context, id string) (model.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[id]
	if !ok {
		return model.Model{}, ErrNotFound
	}
	return m.WithWinRate(), nil
}

// List returns the full catalog in unspecified order.
func (s *MemStore) List(_ context.Context) ([]model.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m.WithWinRate())
	}
	return out, nil
}

// Leaderboard returns the catalog in ranked order.
func (s *MemStore) Leaderboard(ctx context.Context) ([]model.Model, error) {
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
func (s *MemStore) SeedIfEmpty(_ context.Context, models []model.Model) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.models) > 0 {
		return 0, nil
	}
	for _, m := range models {
		s.models[m.ID] = m
	}
	return len(models), nil
}

// ApplyVote commits one comparison outcome as a single atomic unit.
func (s *MemStore) ApplyVote(_ context.Context, winnerID, loserID string, rate rating.Func) (model.Vote, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOpLatency("apply_vote", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	winner, ok := s.models[winnerID]
	if !ok {
		return model.Vote{}, ErrNotFound
	}
	loser, ok := s.models[loserID]
	if !ok {
		return model.Vote{}, ErrNotFound
	}

	winner.Rating, loser.Rating = rate(winner.Rating, loser.Rating)
	winner.Wins++
	loser.Losses++

	s.models[winnerID] = winner
	s.models[loserID] = loser
	s.battles++

	return model.Vote{
		ID:        uuid.NewString(),
		WinnerID:  winnerID,
		LoserID:   loserID,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Count returns the registry size.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.models)
}

// BattlesCompleted returns the total number of committed votes.
func (s *MemStore) BattlesCompleted(_ context.Context) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.battles
}

// Close releases store resources. The in-memory store holds none.
func (s *MemStore) Close() error {
	return nil
}
