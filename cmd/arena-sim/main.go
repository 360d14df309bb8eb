// Command arena-sim floods a running arena server with random battle
// outcomes and verifies the resulting standings.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/nvoss/modelarena/internal/simulate"
	"github.com/nvoss/modelarena/pkg/logger"
)

// Default simulation constants.
const (
	defaultVotes      = 1000
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8090", "Base URL of the arena service")
		votes   = flag.Int("votes", defaultVotes, "Number of votes to submit")
		workers = flag.Int("workers", runtime.NumCPU(), "Number of concurrent clients")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "Random seed for vote outcomes")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	res, err := simulate.Run(ctx, simulate.Config{
		BaseURL: *baseURL,
		Votes:   *votes,
		Workers: *workers,
		Timeout: *timeout,
		Seed:    *seed,
	})
	if err != nil {
		logger.Get().Error(ctx, "simulation failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Info(ctx, "all checks passed",
		logger.Int64("votes_submitted", res.VotesSubmitted))
}
