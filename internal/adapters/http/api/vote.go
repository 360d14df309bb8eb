// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// VoteDependencies defines the interface for vote processing.
type VoteDependencies interface {
	Vote(ctx context.Context, winnerID, loserID string) error
}

// VoteHandler handles vote submissions.
type VoteHandler struct {
	deps VoteDependencies
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(deps VoteDependencies) *VoteHandler {
	return &VoteHandler{deps: deps}
}

// voteRequest mirrors the wire schema for POST /api/vote.
type voteRequest struct {
	WinnerID string `json:"winner_id"`
	LoserID  string `json:"loser_id"`
}

type voteAck struct {
	Status string `json:"status"`
}

// HandlePostVote handles POST /api/vote requests. Votes are intentionally
// not deduplicated; submitting the same outcome twice counts twice.
func (h *VoteHandler) HandlePostVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if err := h.deps.Vote(r.Context(), req.WinnerID, req.LoserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voteAck{Status: "recorded"})
}
