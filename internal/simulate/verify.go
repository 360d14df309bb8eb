package simulate

import (
	"context"
	"fmt"

	"github.com/nvoss/modelarena/internal/domain/model"
)

// Verify checks the invariants a correct arena must uphold after a run:
// standings ordered by the ranking key, wins and losses conserved against
// the vote count, and stats consistent with the leaderboard.
func Verify(ctx context.Context, client *Client, battlesBefore, submitted int64) error {
	board, err := client.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("read leaderboard: %w", err)
	}
	if err := checkOrdering(board); err != nil {
		return err
	}

	var wins, losses uint64
	for _, m := range board {
		wins += m.Wins
		losses += m.Losses
	}
	if wins != losses {
		return fmt.Errorf("wins/losses not conserved: %d wins vs %d losses", wins, losses)
	}

	stats, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	applied := stats.BattlesCompleted - battlesBefore
	if applied < submitted {
		return fmt.Errorf("stats report %d applied votes, submitted %d", applied, submitted)
	}
	if stats.TotalModels != len(board) {
		return fmt.Errorf("stats report %d models, leaderboard has %d", stats.TotalModels, len(board))
	}
	if len(board) > 0 && stats.TopModel != board[0].Name {
		return fmt.Errorf("stats top model %q disagrees with leaderboard leader %q", stats.TopModel, board[0].Name)
	}
	return nil
}

func checkOrdering(board []model.Model) error {
	for i := 1; i < len(board); i++ {
		prev, cur := board[i-1], board[i]
		if prev.Rating > cur.Rating {
			continue
		}
		if prev.Rating < cur.Rating {
			return fmt.Errorf("leaderboard out of order at %d: rating %.2f before %.2f", i, prev.Rating, cur.Rating)
		}
		if prev.WinRate < cur.WinRate {
			return fmt.Errorf("leaderboard tie-break violated at %d: win rate %.1f before %.1f", i, prev.WinRate, cur.WinRate)
		}
		if prev.WinRate == cur.WinRate && prev.Name > cur.Name {
			return fmt.Errorf("leaderboard name tie-break violated at %d: %q before %q", i, prev.Name, cur.Name)
		}
	}
	return nil
}
