// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// BattleDependencies defines the interface for matchup operations.
type BattleDependencies interface {
	Battle(ctx context.Context) (model.Battle, error)
}

// BattleHandler handles matchup requests.
type BattleHandler struct {
	deps BattleDependencies
}

// NewBattleHandler creates a new battle handler.
func NewBattleHandler(deps BattleDependencies) *BattleHandler {
	return &BattleHandler{deps: deps}
}

// HandleGetBattle handles GET /api/battle requests.
func (h *BattleHandler) HandleGetBattle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	battle, err := h.deps.Battle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battle)
}
