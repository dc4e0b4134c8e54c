package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hollowbrook/village-echoes/internal/storage"
)

const defaultLeaderboardSize = 10

// LeaderboardHandler serves GET /v1/leaderboard.
type LeaderboardHandler struct {
	store  storage.RecordStore
	logger *slog.Logger
}

func NewLeaderboardHandler(store storage.RecordStore, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{store: store, logger: logger}
}

// LeaderboardResponse is the global high-score list, best first.
type LeaderboardResponse struct {
	Entries []storage.LeaderboardEntry `json:"entries"`
}

func (h *LeaderboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	n := defaultLeaderboardSize
	if limit := r.URL.Query().Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 {
			writeError(w, h.logger, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		n = parsed
	}

	entries, err := h.store.TopScores(r.Context(), n)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, LeaderboardResponse{Entries: entries})
}
