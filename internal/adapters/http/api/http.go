// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nvoss/modelarena/internal/adapters/repository"
	service "github.com/nvoss/modelarena/internal/app"
	"github.com/nvoss/modelarena/internal/domain/matchmaker"
	"github.com/nvoss/modelarena/internal/domain/model"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Battle(ctx context.Context) (model.Battle, error)
	Vote(ctx context.Context, winnerID, loserID string) error
	Models(ctx context.Context) ([]model.Model, error)
	Leaderboard(ctx context.Context) ([]model.Model, error)
	Stats(ctx context.Context) (model.Stats, error)
	SeedIfEmpty(ctx context.Context) (int, error)
}

// Server wires HTTP routes for the arena API.
type Server struct {
	battleHandler      *BattleHandler
	voteHandler        *VoteHandler
	modelsHandler      *ModelsHandler
	leaderboardHandler *LeaderboardHandler
	statsHandler       *StatsHandler
	healthHandler      *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		battleHandler:      NewBattleHandler(deps),
		voteHandler:        NewVoteHandler(deps),
		modelsHandler:      NewModelsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		statsHandler:       NewStatsHandler(deps),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/battle", MetricsMiddleware(s.battleHandler.HandleGetBattle, "battle"))
	mux.HandleFunc("/api/vote", MetricsMiddleware(s.voteHandler.HandlePostVote, "vote"))
	mux.HandleFunc("/api/models", MetricsMiddleware(s.modelsHandler.HandleGetModels, "models"))
	mux.HandleFunc("/api/models/seed", MetricsMiddleware(s.modelsHandler.HandlePostSeed, "seed"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleGetStats, "stats"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", MetricsHandler())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service and registry errors to the wire
// taxonomy: invalid_argument, not_found, insufficient_models, conflict.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSelfVote), errors.Is(err, service.ErrMissingID):
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, matchmaker.ErrEmptyCatalog):
		writeError(w, http.StatusConflict, "empty_catalog", err)
	case errors.Is(err, matchmaker.ErrInsufficientModels):
		writeError(w, http.StatusConflict, "insufficient_models", err)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
