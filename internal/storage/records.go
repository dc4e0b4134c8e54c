// Package storage persists completed-game records. Live sessions are never
// persisted; only the outcome of a finished game survives the process.
package storage

import (
	"context"
	"time"
)

// CompletionRecord is the durable outcome of one finished game.
type CompletionRecord struct {
	PlayerAddress string    `json:"user_address"`
	SessionRef    string    `json:"game_session_id"`
	Score         int64     `json:"score"`
	Won           bool      `json:"won"`
	TrueEnding    bool      `json:"is_true_ending"`
	RewardAmount  int64     `json:"reward_amount"`
	ClaimID       string    `json:"reward_claim_id,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}

// LeaderboardEntry is one row of the global score board.
type LeaderboardEntry struct {
	PlayerAddress string `json:"user_address"`
	SessionRef    string `json:"game_session_id"`
	Score         int64  `json:"score"`
}

// RecordStore is the interface for completion persistence.
type RecordStore interface {
	// Ping tests the store connection.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error

	// SaveCompletion stores a completion record and indexes it for the
	// player and the leaderboard.
	SaveCompletion(ctx context.Context, rec CompletionRecord) error

	// ListCompletions returns all completion records for a player address.
	ListCompletions(ctx context.Context, address string) ([]CompletionRecord, error)

	// TopScores returns the highest-scoring winning completions, best first.
	TopScores(ctx context.Context, n int) ([]LeaderboardEntry, error)
}
