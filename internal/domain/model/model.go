// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// Model represents one competing item in the arena catalog.
// Fields mirror the JSON schema served by the HTTP API.
type Model struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url,omitempty"`
	Capabilities []string  `json:"capabilities"`
	Wins         uint64    `json:"wins"`
	Losses       uint64    `json:"losses"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`

	// WinRate is derived from Wins/Losses via WithWinRate. Kept in the
	// struct so list responses carry it on the wire.
	WinRate float64 `json:"win_rate"`
}

// Battles returns the total number of comparisons this model took part in.
func (m Model) Battles() uint64 {
	return m.Wins + m.Losses
}

// ComputeWinRate returns wins/(wins+losses) as a percentage rounded to one
// decimal place, or 0 when the model has not battled yet.
func (m Model) ComputeWinRate() float64 {
	total := m.Wins + m.Losses
	if total == 0 {
		return 0
	}
	pct := float64(m.Wins) / float64(total) * 100
	return math.Round(pct*10) / 10
}

// WithWinRate returns a copy with the derived WinRate field filled in.
func (m Model) WithWinRate() Model {
	m.WinRate = m.ComputeWinRate()
	return m
}

// Battle is an ephemeral pairing of two distinct models presented to one
// client for one decision. It is never persisted.
type Battle struct {
	Model1 Model `json:"model1"`
	Model2 Model `json:"model2"`
}

// Vote is an immutable record of one completed comparison. Once applied it
// has permanently mutated exactly the two referenced models; it is never
// replayed or reversed.
type Vote struct {
	ID        string    `json:"id"`
	WinnerID  string    `json:"winner_id"`
	LoserID   string    `json:"loser_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarizes arena activity for the stats endpoint.
type Stats struct {
	BattlesCompleted int64  `json:"battles_completed"`
	TotalModels      int    `json:"total_models"`
	TopModel         string `json:"top_model"`
}
