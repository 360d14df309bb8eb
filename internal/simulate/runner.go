package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nvoss/modelarena/pkg/logger"
)

// Config controls a simulation run.
type Config struct {
	BaseURL string
	Votes   int
	Workers int
	Timeout time.Duration
	Seed    int64
}

// Result summarizes a completed run.
type Result struct {
	VotesSubmitted int64
	VoteFailures   int64
	Duration       time.Duration
}

// Run seeds the catalog, submits Config.Votes random battle outcomes using
// Config.Workers concurrent clients, then verifies the standings.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	log := logger.Get().Named("simulate")
	client := NewClient(cfg.BaseURL, cfg.Timeout)
	start := time.Now()

	if err := client.Health(ctx); err != nil {
		return Result{}, fmt.Errorf("service health check: %w", err)
	}
	if err := client.Seed(ctx); err != nil {
		return Result{}, fmt.Errorf("seed catalog: %w", err)
	}

	before, err := client.Stats(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read initial stats: %w", err)
	}

	log.Info(ctx, "starting vote traffic",
		logger.String("base_url", cfg.BaseURL),
		logger.Int("votes", cfg.Votes),
		logger.Int("workers", cfg.Workers),
	)

	var submitted, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	perWorker := cfg.Votes / cfg.Workers
	remainder := cfg.Votes % cfg.Workers

	for w := 0; w < cfg.Workers; w++ {
		quota := perWorker
		if w < remainder {
			quota++
		}
		rng := rand.New(rand.NewSource(cfg.Seed + int64(w))) //nolint:gosec // simulation traffic only

		g.Go(func() error {
			for i := 0; i < quota; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				battle, err := client.Battle(gctx)
				if err != nil {
					failed.Add(1)
					continue
				}
				winner, loser := battle.Model1.ID, battle.Model2.ID
				if rng.Intn(2) == 0 {
					winner, loser = loser, winner
				}
				if err := client.Vote(gctx, winner, loser); err != nil {
					failed.Add(1)
					continue
				}
				submitted.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("vote traffic: %w", err)
	}

	if err := Verify(ctx, client, before.BattlesCompleted, submitted.Load()); err != nil {
		return Result{}, err
	}

	res := Result{
		VotesSubmitted: submitted.Load(),
		VoteFailures:   failed.Load(),
		Duration:       time.Since(start),
	}
	log.Info(ctx, "simulation complete",
		logger.Int64("votes_submitted", res.VotesSubmitted),
		logger.Int64("vote_failures", res.VoteFailures),
		logger.String("duration", res.Duration.String()),
	)
	return res, nil
}
