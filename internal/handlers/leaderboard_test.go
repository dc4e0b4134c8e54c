package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowbrook/village-echoes/internal/storage"
)

func seedLeaderboard(t *testing.T, store *storage.MockRecordStore) {
	t.Helper()
	records := []storage.CompletionRecord{
		{PlayerAddress: "0xaa", SessionRef: "session-aaaaaaaa", Score: 100, Won: true},
		{PlayerAddress: "0xbb", SessionRef: "session-bbbbbbbb", Score: 900, Won: true},
		{PlayerAddress: "0xcc", SessionRef: "session-cccccccc", Score: 999, Won: false},
		{PlayerAddress: "0xdd", SessionRef: "session-dddddddd", Score: 500, Won: true},
	}
	for _, rec := range records {
		require.NoError(t, store.SaveCompletion(context.Background(), rec))
	}
}

func TestLeaderboardHandler(t *testing.T) {
	store := storage.NewMockRecordStore()
	seedLeaderboard(t, store)
	h := NewLeaderboardHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp LeaderboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 3, "losses never chart")
	assert.Equal(t, int64(900), resp.Entries[0].Score)
	assert.Equal(t, int64(500), resp.Entries[1].Score)
	assert.Equal(t, int64(100), resp.Entries[2].Score)
}

func TestLeaderboardHandler_Limit(t *testing.T) {
	store := storage.NewMockRecordStore()
	seedLeaderboard(t, store)
	h := NewLeaderboardHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard?limit=1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp LeaderboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "0xbb", resp.Entries[0].PlayerAddress)
}

func TestLeaderboardHandler_Errors(t *testing.T) {
	h := NewLeaderboardHandler(storage.NewMockRecordStore(), testLogger())

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{"method not allowed", http.MethodPost, "/v1/leaderboard", http.StatusMethodNotAllowed},
		{"non-numeric limit", http.MethodGet, "/v1/leaderboard?limit=abc", http.StatusBadRequest},
		{"zero limit", http.MethodGet, "/v1/leaderboard?limit=0", http.StatusBadRequest},
		{"negative limit", http.MethodGet, "/v1/leaderboard?limit=-3", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
