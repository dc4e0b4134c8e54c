package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	completionKeyPrefix = "completion:"
	playerIndexPrefix   = "completions:"
	leaderboardKey      = "leaderboard"
)

// RedisRecordStore implements RecordStore on Redis. Records are JSON values
// keyed by player and session; a per-player list indexes them and a sorted
// set keeps the leaderboard.
type RedisRecordStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ RecordStore = (*RedisRecordStore)(nil)

// NewRedisRecordStore creates a record store against the Redis at addr.
func NewRedisRecordStore(addr string, logger *slog.Logger) *RedisRecordStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisRecordStore{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisRecordStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisRecordStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

func recordKey(address, sessionRef string) string {
	return completionKeyPrefix + address + ":" + sessionRef
}

func (r *RedisRecordStore) SaveCompletion(ctx context.Context, rec CompletionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal completion record: %w", err)
	}

	key := recordKey(rec.PlayerAddress, rec.SessionRef)
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save completion record", "key", key, "error", err)
		return fmt.Errorf("failed to save completion record: %w", err)
	}
	if err := r.client.RPush(ctx, playerIndexPrefix+rec.PlayerAddress, key).Err(); err != nil {
		return fmt.Errorf("failed to index completion record: %w", err)
	}
	if rec.Won {
		err := r.client.ZAdd(ctx, leaderboardKey, redis.Z{
			Score:  float64(rec.Score),
			Member: key,
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to update leaderboard: %w", err)
		}
	}

	r.logger.Debug("Completion record saved", "key", key, "won", rec.Won, "score", rec.Score)
	return nil
}

func (r *RedisRecordStore) ListCompletions(ctx context.Context, address string) ([]CompletionRecord, error) {
	keys, err := r.client.LRange(ctx, playerIndexPrefix+address, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	records := make([]CompletionRecord, 0, len(keys))
	for _, key := range keys {
		data, err := r.client.Get(ctx, key).Result()
		if err == redis.Nil {
			// Index entry outlived its record; skip it.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load completion %q: %w", key, err)
		}
		var rec CompletionRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal completion %q: %w", key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisRecordStore) TopScores(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	if n <= 0 {
		return []LeaderboardEntry{}, nil
	}
	zs, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		key, ok := z.Member.(string)
		if !ok {
			continue
		}
		data, err := r.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load leaderboard record %q: %w", key, err)
		}
		var rec CompletionRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal leaderboard record %q: %w", key, err)
		}
		entries = append(entries, LeaderboardEntry{
			PlayerAddress: rec.PlayerAddress,
			SessionRef:    rec.SessionRef,
			Score:         rec.Score,
		})
	}
	return entries, nil
}
