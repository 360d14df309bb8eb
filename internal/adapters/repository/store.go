// Package repository defines the model registry interface and its
// implementations.
package repository

import (
	"context"
	"sort"

	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/internal/domain/rating"
)

// Store provides transactional access to the model registry. It exclusively
// owns all model state; every mutation flows through ApplyVote or
// SeedIfEmpty.
type Store interface {
	// Get returns the model with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Model, error)

	// List returns the full catalog in unspecified order.
	List(ctx context.Context) ([]model.Model, error)

	// Leaderboard returns the catalog ordered by rating desc, win rate desc,
	// name asc. The ordering is deterministic for unchanged state.
	Leaderboard(ctx context.Context) ([]model.Model, error)

	// SeedIfEmpty inserts the given models when the registry holds none.
	// Seeding an already-populated registry is a successful no-op; the
	// returned count is the number of models actually inserted.
	SeedIfEmpty(ctx context.Context, models []model.Model) (int, error)

	// ApplyVote atomically increments the winner's wins and the loser's
	// losses and writes the ratings produced by rate. Either both models
	// change or neither does. Returns ErrNotFound when either id is unknown
	// and ErrConflict when concurrent writers exhausted the retry budget.
	ApplyVote(ctx context.Context, winnerID, loserID string, rate rating.Func) (model.Vote, error)

	// Count returns the registry size.
	Count(ctx context.Context) int

	// BattlesCompleted returns the total number of committed votes.
	BattlesCompleted(ctx context.Context) int64

	// Close releases store resources.
	Close() error
}

// rankLess orders models for the leaderboard: rating desc, then win rate
// desc, then name asc for full determinism.
func rankLess(a, b model.Model) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	ar, br := a.ComputeWinRate(), b.ComputeWinRate()
	if ar != br {
		return ar > br
	}
	return a.Name < b.Name
}

// sortLeaderboard orders models in place and fills the derived win rate.
func sortLeaderboard(models []model.Model) {
	sort.Slice(models, func(i, j int) bool {
		return rankLess(models[i], models[j])
	})
	for i := range models {
		models[i].WinRate = models[i].ComputeWinRate()
	}
}
