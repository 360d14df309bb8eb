package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nvoss/modelarena/internal/adapters/http/api"
	"github.com/nvoss/modelarena/internal/adapters/journal"
	"github.com/nvoss/modelarena/internal/adapters/repository"
	service "github.com/nvoss/modelarena/internal/app"
	"github.com/nvoss/modelarena/internal/config"
	"github.com/nvoss/modelarena/internal/domain/matchmaker"
	"github.com/nvoss/modelarena/internal/domain/rating"
	"github.com/nvoss/modelarena/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// The custom registry carries only arena metrics; drop the default
	// process collectors so /metrics stays focused.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, jnl, err := buildBackends(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open backends", logger.Error(err))
		return
	}

	matcherOpts := []matchmaker.Option{}
	if cfg.MatchSeed != 0 {
		matcherOpts = append(matcherOpts, matchmaker.WithSeed(cfg.MatchSeed))
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithStore(store),
		service.WithJournal(jnl),
		service.WithRatingEngine(rating.New(
			rating.WithK(cfg.KFactor),
			rating.WithBaseRating(cfg.BaseRating),
		)),
		service.WithMatchmaker(matchmaker.New(matcherOpts...)),
		service.WithJournalQueueSize(cfg.JournalQueueSize),
		service.WithJournalWorkers(cfg.JournalWorkers),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// buildBackends opens the registry store and vote journal selected by cfg.
func buildBackends(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, journal.Journal, error) {
	var store repository.Store
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := repository.NewSQLiteStore(ctx, cfg.SQLitePath,
			repository.WithVoteRetries(cfg.VoteRetries))
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using sqlite registry", logger.String("path", cfg.SQLitePath))
		store = s
	default:
		store = repository.NewMemStore(ctx)
		log.Info(ctx, "using in-memory registry")
	}

	var jnl journal.Journal
	if cfg.JournalPath != "" {
		j, err := journal.NewSQLiteJournal(ctx, cfg.JournalPath)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		log.Info(ctx, "using sqlite vote journal", logger.String("path", cfg.JournalPath))
		jnl = j
	} else {
		jnl = journal.NewMemoryJournal()
	}
	return store, jnl, nil
}

// startServiceMetricsUpdater periodically refreshes registry gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.RefreshMetrics(ctx)
		}
	}
}
