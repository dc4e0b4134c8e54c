package storage

import (
	"context"
	"sort"
	"sync"
)

// MockRecordStore is an in-memory RecordStore for tests.
type MockRecordStore struct {
	mu      sync.Mutex
	records []CompletionRecord

	PingErr error
	SaveErr error
}

var _ RecordStore = (*MockRecordStore)(nil)

func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{records: make([]CompletionRecord, 0)}
}

func (m *MockRecordStore) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockRecordStore) Close() error { return nil }

func (m *MockRecordStore) SaveCompletion(ctx context.Context, rec CompletionRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *MockRecordStore) ListCompletions(ctx context.Context, address string) ([]CompletionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionRecord, 0)
	for _, rec := range m.records {
		if rec.PlayerAddress == address {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MockRecordStore) TopScores(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	winners := make([]CompletionRecord, 0)
	for _, rec := range m.records {
		if rec.Won {
			winners = append(winners, rec)
		}
	}
	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].Score > winners[j].Score
	})
	if n > len(winners) {
		n = len(winners)
	}
	entries := make([]LeaderboardEntry, 0, n)
	for _, rec := range winners[:n] {
		entries = append(entries, LeaderboardEntry{
			PlayerAddress: rec.PlayerAddress,
			SessionRef:    rec.SessionRef,
			Score:         rec.Score,
		})
	}
	return entries, nil
}

// Records returns a copy of all saved records.
func (m *MockRecordStore) Records() []CompletionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionRecord, len(m.records))
	copy(out, m.records)
	return out
}
