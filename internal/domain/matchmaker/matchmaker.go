// Package matchmaker selects two distinct catalog models for a new battle.
package matchmaker

import (
	"context"
	"math/rand"
	"time"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// Matchmaker draws battle pairs from a catalog snapshot. Selection is
// weighted toward under-sampled models so rarely-shown entries keep
// receiving comparisons instead of stagnating.
type Matchmaker struct {
	rng *rand.Rand
}

// Option applies a configuration option to the Matchmaker.
type Option func(*Matchmaker)

// WithRand injects the random source so selection is reproducible under test.
func WithRand(rng *rand.Rand) Option {
	return func(m *Matchmaker) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(m *Matchmaker) {
		m.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // matchup selection needs no crypto randomness
	}
}

// New creates a Matchmaker with configuration options.
func New(opts ...Option) *Matchmaker {
	m := &Matchmaker{}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // see WithSeed
	}
	return m
}

// Next selects two distinct models from the catalog. It is a pure read plus
// random draw; it never mutates catalog state.
func (m *Matchmaker) Next(ctx context.Context, catalog []model.Model) (model.Battle, error) {
	if err := ctx.Err(); err != nil {
		return model.Battle{}, err
	}
	switch len(catalog) {
	case 0:
		return model.Battle{}, ErrEmptyCatalog
	case 1:
		return model.Battle{}, ErrInsufficientModels
	}

	first := m.pick(catalog, -1)
	second := m.pick(catalog, first)

	return model.Battle{
		Model1: catalog[first].WithWinRate(),
		Model2: catalog[second].WithWinRate(),
	}, nil
}

// pick draws one index, weighted by 1/(battles+1), skipping `exclude`.
// The inverse-exposure weight biases selection toward models with few
// recorded comparisons.
func (m *Matchmaker) pick(catalog []model.Model, exclude int) int {
	var total float64
	for i := range catalog {
		if i == exclude {
			continue
		}
		total += weight(catalog[i])
	}

	r := m.rng.Float64() * total
	for i := range catalog {
		if i == exclude {
			continue
		}
		r -= weight(catalog[i])
		if r < 0 {
			return i
		}
	}

	// Floating point accumulation can leave r marginally >= 0; fall back to
	// the last eligible index.
	for i := len(catalog) - 1; i >= 0; i-- {
		if i != exclude {
			return i
		}
	}
	return 0
}

func weight(m model.Model) float64 {
	return 1 / float64(m.Battles()+1)
}
