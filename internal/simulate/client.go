// Package simulate drives battle/vote traffic against a running arena
// server and verifies the resulting standings.
package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// Client is a thin JSON client for the arena HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the arena server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Health checks the /healthz endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/healthz", nil)
}

// Seed invokes the idempotent catalog seeding operation.
func (c *Client) Seed(ctx context.Context) error {
	return c.postJSON(ctx, "/api/models/seed", struct{}{}, nil)
}

// Battle fetches one matchup.
func (c *Client) Battle(ctx context.Context) (model.Battle, error) {
	var b model.Battle
	err := c.getJSON(ctx, "/api/battle", &b)
	return b, err
}

// Vote submits one comparison outcome.
func (c *Client) Vote(ctx context.Context, winnerID, loserID string) error {
	body := map[string]string{"winner_id": winnerID, "loser_id": loserID}
	return c.postJSON(ctx, "/api/vote", body, nil)
}

// Leaderboard fetches the full standings.
func (c *Client) Leaderboard(ctx context.Context) ([]model.Model, error) {
	var board []model.Model
	err := c.getJSON(ctx, "/api/leaderboard", &board)
	return board, err
}

// Stats fetches the summary statistics.
func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var s model.Stats
	err := c.getJSON(ctx, "/api/stats", &s)
	return s, err
}
