package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowbrook/village-echoes/internal/registry"
	"github.com/hollowbrook/village-echoes/internal/storage"
	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
	"github.com/hollowbrook/village-echoes/pkg/state"
)

func TestHealthHandler(t *testing.T) {
	store := storage.NewMockRecordStore()
	reg := registry.New(testLogger())
	reg.Add(state.NewGameSession(quest.DifficultyMedium, []roster.Villager{{Name: "Old Mara"}}))

	h := NewHealthHandler(store, reg, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "village-echoes", resp.Service)
	assert.Equal(t, "healthy", resp.Components["records"])
	assert.Equal(t, float64(1), resp.Components["active_games"])
}

func TestHealthHandler_Degraded(t *testing.T) {
	store := storage.NewMockRecordStore()
	store.PingErr = errors.New("connection refused")
	reg := registry.New(testLogger())

	h := NewHealthHandler(store, reg, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["records"])
}
