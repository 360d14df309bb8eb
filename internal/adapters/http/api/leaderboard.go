// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// LeaderboardDependencies defines the interface for standings queries.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context) ([]model.Model, error)
}

// LeaderboardHandler handles standings requests.
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /api/leaderboard[?limit=N] requests.
// Ordering: rating desc, win rate desc, name asc.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	board, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_argument", errInvalidLimit)
			return
		}
		if n < len(board) {
			board = board[:n]
		}
	}

	if board == nil {
		board = []model.Model{}
	}
	writeJSON(w, http.StatusOK, board)
}
