package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func setupRedis(t *testing.T) (*RedisRecordStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisRecordStore(mr.Addr(), testLogger())
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store, mr
}

func testRecord(addr, ref string, score int64, won bool) CompletionRecord {
	return CompletionRecord{
		PlayerAddress: addr,
		SessionRef:    ref,
		Score:         score,
		Won:           won,
		RewardAmount:  100_000_000,
		CompletedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisRecordStore_Ping(t *testing.T) {
	store, mr := setupRedis(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	mr.Close()
	if err := store.Ping(ctx); err == nil {
		t.Error("expected ping failure after server shutdown")
	}
}

func TestRedisRecordStore_SaveAndList(t *testing.T) {
	store, _ := setupRedis(t)
	ctx := context.Background()

	rec1 := testRecord("0xabc", "session-aaaaaaaa", 500, true)
	rec2 := testRecord("0xabc", "session-bbbbbbbb", 200, false)
	other := testRecord("0xdef", "session-cccccccc", 900, true)

	for _, rec := range []CompletionRecord{rec1, rec2, other} {
		if err := store.SaveCompletion(ctx, rec); err != nil {
			t.Fatalf("SaveCompletion failed: %v", err)
		}
	}

	records, err := store.ListCompletions(ctx, "0xabc")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].SessionRef != "session-aaaaaaaa" || records[1].SessionRef != "session-bbbbbbbb" {
		t.Errorf("records out of insertion order: %v", records)
	}
	if records[0].Score != 500 || !records[0].Won {
		t.Errorf("record fields lost in round trip: %+v", records[0])
	}

	empty, err := store.ListCompletions(ctx, "0xnothing")
	if err != nil {
		t.Fatalf("ListCompletions for unknown player failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no records for unknown player, got %d", len(empty))
	}
}

func TestRedisRecordStore_TopScores(t *testing.T) {
	store, _ := setupRedis(t)
	ctx := context.Background()

	// Losses never enter the leaderboard.
	records := []CompletionRecord{
		testRecord("0xaa", "session-wins-lo", 100, true),
		testRecord("0xbb", "session-wins-hi", 900, true),
		testRecord("0xcc", "session-lost-hi", 999, false),
		testRecord("0xdd", "session-wins-mid", 500, true),
	}
	for _, rec := range records {
		if err := store.SaveCompletion(ctx, rec); err != nil {
			t.Fatalf("SaveCompletion failed: %v", err)
		}
	}

	top, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d leaderboard entries, want 3", len(top))
	}
	if top[0].Score != 900 || top[1].Score != 500 || top[2].Score != 100 {
		t.Errorf("leaderboard not sorted best first: %v", top)
	}
	if top[0].PlayerAddress != "0xbb" {
		t.Errorf("top entry = %q, want 0xbb", top[0].PlayerAddress)
	}

	// n bounds the result.
	two, err := store.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("TopScores(2) failed: %v", err)
	}
	if len(two) != 2 {
		t.Errorf("got %d entries, want 2", len(two))
	}

	none, err := store.TopScores(ctx, 0)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("TopScores(0) returned %d entries", len(none))
	}
}

func TestRedisRecordStore_DanglingIndexEntry(t *testing.T) {
	store, mr := setupRedis(t)
	ctx := context.Background()

	rec := testRecord("0xabc", "session-dangling", 100, true)
	if err := store.SaveCompletion(ctx, rec); err != nil {
		t.Fatalf("SaveCompletion failed: %v", err)
	}

	// Delete the record but leave the index entry behind.
	mr.Del(recordKey(rec.PlayerAddress, rec.SessionRef))

	records, err := store.ListCompletions(ctx, "0xabc")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("dangling index entry surfaced a record: %v", records)
	}
}
