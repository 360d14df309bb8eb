// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// ModelsDependencies defines the interface for catalog operations.
type ModelsDependencies interface {
	Models(ctx context.Context) ([]model.Model, error)
	SeedIfEmpty(ctx context.Context) (int, error)
}

// ModelsHandler handles catalog listing and seeding.
type ModelsHandler struct {
	deps ModelsDependencies
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(deps ModelsDependencies) *ModelsHandler {
	return &ModelsHandler{deps: deps}
}

// HandleGetModels handles GET /api/models requests.
func (h *ModelsHandler) HandleGetModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	models, err := h.deps.Models(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if models == nil {
		models = []model.Model{}
	}
	writeJSON(w, http.StatusOK, models)
}

type seedResponse struct {
	Status string `json:"status"`
	Seeded int    `json:"seeded"`
}

// HandlePostSeed handles POST /api/models/seed requests. Seeding an already
// populated registry is a successful no-op reporting zero inserts.
func (h *ModelsHandler) HandlePostSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	inserted, err := h.deps.SeedIfEmpty(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seedResponse{Status: "ok", Seeded: inserted})
}
