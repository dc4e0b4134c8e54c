package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hollowbrook/village-echoes/internal/engine"
	"github.com/hollowbrook/village-echoes/internal/registry"
	"github.com/hollowbrook/village-echoes/pkg/chat"
	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/state"
)

// GameHandler handles the game lifecycle endpoints.
// Routes:
// POST /v1/games                 - Create a new game session
// POST /v1/games/{id}/interact   - One conversation turn with a villager
// POST /v1/games/{id}/items      - Confirm an item acquisition
// POST /v1/games/{id}/guess      - Terminal location guess
type GameHandler struct {
	engine          *engine.Engine
	registry        *registry.Registry
	numVillagers    int
	defaultLocCount int
	logger          *slog.Logger
}

func NewGameHandler(e *engine.Engine, r *registry.Registry, numVillagers, defaultLocCount int, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		engine:          e,
		registry:        r,
		numVillagers:    numVillagers,
		defaultLocCount: defaultLocCount,
		logger:          logger,
	}
}

func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for games endpoint", "method", r.Method, "path", r.URL.Path)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	if path == "" {
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	gameID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid game id", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game ID format")
		return
	}
	if len(parts) != 2 {
		writeError(w, h.logger, http.StatusNotFound, "Unknown games operation")
		return
	}

	gs := h.registry.Get(gameID)
	if gs == nil {
		h.logger.Warn("Game not found", "id", gameID.String())
		h.writeEngineError(w, fmt.Errorf("%w: %s", engine.ErrUnknownSession, gameID), "Game not found")
		return
	}

	switch parts[1] {
	case "interact":
		h.handleInteract(w, r, gs)
	case "items":
		h.handleConfirmItem(w, r, gs)
	case "guess":
		h.handleGuess(w, r, gs)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown games operation")
	}
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req chat.NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	difficulty, err := quest.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	locCount := req.NumInaccessibleLocations
	if locCount <= 0 {
		locCount = h.defaultLocCount
	}

	gs, err := h.engine.StartSession(r.Context(), difficulty, h.numVillagers, locCount)
	if err != nil {
		h.logger.Error("Failed to create game", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate new game")
		return
	}
	h.registry.Add(gs)

	// Player-facing roster shows titles only; names stay hidden until met.
	refs := make([]chat.VillagerRef, 0, len(gs.Villagers))
	for i, v := range gs.Villagers {
		refs = append(refs, chat.VillagerRef{
			ID:    fmt.Sprintf("villager_%d", i),
			Title: v.Title,
		})
	}

	h.logger.Info("Game created", "id", gs.ID.String(), "difficulty", difficulty)
	writeJSON(w, h.logger, http.StatusCreated, chat.NewGameResponse{
		GameID:                gs.ID,
		InaccessibleLocations: gs.InaccessibleLocations,
		Villagers:             refs,
	})
}

// villagerByRef maps a positional reference like "villager_2" to a villager
// in this session's sampled roster.
func villagerByRef(gs *state.GameSession, ref string) (string, error) {
	idxStr, ok := strings.CutPrefix(ref, "villager_")
	if !ok {
		return "", fmt.Errorf("malformed villager reference %q", ref)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return "", fmt.Errorf("malformed villager reference %q", ref)
	}
	v := gs.VillagerByIndex(idx)
	if v == nil {
		return "", fmt.Errorf("villager reference %q out of range", ref)
	}
	return v.Name, nil
}

func (h *GameHandler) handleInteract(w http.ResponseWriter, r *http.Request, gs *state.GameSession) {
	var req chat.InteractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	villagerName, err := villagerByRef(gs, req.VillagerID)
	if err != nil {
		h.logger.Warn("Invalid villager reference", "id", gs.ID.String(), "ref", req.VillagerID)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.TakeTurn(r.Context(), gs, villagerName, req.Message)
	if err != nil {
		h.writeEngineError(w, err, "Interaction failed")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, chat.InteractResponse{
		VillagerID:        req.VillagerID,
		VillagerName:      villagerName,
		NPCDialogue:       result.NPCDialogue,
		PlayerSuggestions: result.PlayerResponses,
	})
}

func (h *GameHandler) handleConfirmItem(w http.ResponseWriter, r *http.Request, gs *state.GameSession) {
	var req chat.ConfirmItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ItemID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "item_id cannot be empty")
		return
	}

	if err := h.engine.ConfirmItem(gs, req.ItemID); err != nil {
		h.writeEngineError(w, err, "Item confirmation failed")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, chat.ConfirmItemResponse{
		Status:  "success",
		Message: req.ItemID + " added to inventory.",
	})
}

func (h *GameHandler) handleGuess(w http.ResponseWriter, r *http.Request, gs *state.GameSession) {
	var req chat.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.LocationName == "" {
		writeError(w, h.logger, http.StatusBadRequest, "location_name cannot be empty")
		return
	}

	outcome, err := h.engine.ResolveGuess(gs, req.LocationName)
	if err != nil {
		h.writeEngineError(w, err, "Guess failed")
		return
	}

	// Terminal: the session leaves the registry once resolved.
	h.registry.Remove(gs.ID)

	writeJSON(w, h.logger, http.StatusOK, chat.GuessResponse{
		Message:      outcome.Message,
		IsCorrect:    outcome.IsCorrect,
		IsTrueEnding: outcome.IsTrueEnding,
	})
}

// writeEngineError maps the engine error taxonomy to HTTP statuses.
func (h *GameHandler) writeEngineError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, engine.ErrInvalidReference):
		h.logger.Warn("Invalid reference", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrSessionResolved):
		writeError(w, h.logger, http.StatusConflict, "Game is already resolved")
	case errors.Is(err, engine.ErrUnknownSession):
		writeError(w, h.logger, http.StatusNotFound, "Game not found")
	case errors.Is(err, engine.ErrOracleFailure):
		h.logger.Error("Oracle failure", "error", err)
		writeError(w, h.logger, http.StatusBadGateway, "Failed to generate dialogue. Please resend the same message.")
	default:
		h.logger.Error(fallback, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, fallback)
	}
}
