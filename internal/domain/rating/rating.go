// Package rating implements the pairwise Elo-style skill update applied
// after each vote.
package rating

import "math"

// Default rating configuration constants.
const (
	// DefaultK is the sensitivity of a single comparison.
	DefaultK = 32.0
	// DefaultBase is the rating assigned to every model at seed time.
	DefaultBase = 1500.0

	// eloScale is the rating gap at which the stronger side is expected to
	// win ten times as often.
	eloScale = 400.0
)

// Func computes new ratings for a (winner, loser) pair. The repository
// invokes it inside the vote transaction so the read-compute-write cycle
// stays atomic.
type Func func(winner, loser float64) (newWinner, newLoser float64)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithK overrides the K sensitivity factor.
func WithK(k float64) Option {
	return func(e *Engine) {
		if k > 0 {
			e.k = k
		}
	}
}

// WithBaseRating overrides the rating assigned to new models.
func WithBaseRating(base float64) Option {
	return func(e *Engine) {
		if base > 0 {
			e.base = base
		}
	}
}

// Engine computes zero-sum pairwise rating updates. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	k    float64
	base float64
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		k:    DefaultK,
		base: DefaultBase,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Base returns the rating assigned to models at creation/seed time.
func (e *Engine) Base() float64 {
	return e.base
}

// Expected returns the probability that a model rated `winner` beats a model
// rated `loser` under the logistic Elo model.
func (e *Engine) Expected(winner, loser float64) float64 {
	return 1 / (1 + math.Pow(10, (loser-winner)/eloScale))
}

// Update returns the post-vote ratings for the winner and loser. The change
// is zero-sum: the winner gains exactly what the loser gives up.
func (e *Engine) Update(winner, loser float64) (float64, float64) {
	delta := e.k * (1 - e.Expected(winner, loser))
	return winner + delta, loser - delta
}
