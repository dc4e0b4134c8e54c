package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hollowbrook/village-echoes/internal/services"
	"github.com/hollowbrook/village-echoes/internal/storage"
	"github.com/hollowbrook/village-echoes/pkg/reward"
)

// RewardHandler handles game completion and reward queries.
// Routes:
// POST /v1/rewards/complete             - Record a completion, compute reward
// GET  /v1/rewards/completions/{addr}   - List a player's completions
type RewardHandler struct {
	store      storage.RecordStore
	settlement services.SettlementService // nil disables on-chain claims
	logger     *slog.Logger
}

func NewRewardHandler(store storage.RecordStore, settlement services.SettlementService, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{
		store:      store,
		settlement: settlement,
		logger:     logger,
	}
}

// CompleteGameRequest reports a finished game for reward settlement.
type CompleteGameRequest struct {
	UserAddress   string `json:"user_address"`
	GameSessionID string `json:"game_session_id"`
	Score         int64  `json:"score"`
	Won           bool   `json:"won"`
	IsTrueEnding  bool   `json:"is_true_ending"`
}

// Validate rejects malformed input before any reward computation.
func (req *CompleteGameRequest) Validate() error {
	if err := reward.ValidateAddress(req.UserAddress); err != nil {
		return err
	}
	if err := reward.ValidateScore(req.Score); err != nil {
		return err
	}
	return reward.ValidateSessionRef(req.GameSessionID)
}

// CompleteGameResponse returns the computed reward.
type CompleteGameResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	UserAddress   string `json:"user_address"`
	GameSessionID string `json:"game_session_id"`
	Score         int64  `json:"score"`
	Won           bool   `json:"won"`
	IsTrueEnding  bool   `json:"is_true_ending"`
	RewardAmount  int64  `json:"reward_amount"`
	RewardClaimID string `json:"reward_claim_id,omitempty"`
	CompletedAt   string `json:"completed_at"`
}

// CompletionsResponse lists a player's completion records.
type CompletionsResponse struct {
	UserAddress  string                     `json:"user_address"`
	Completions  []storage.CompletionRecord `json:"completions"`
	TotalRewards int64                      `json:"total_rewards"`
}

func (h *RewardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/rewards"), "/")
	switch {
	case path == "complete" && r.Method == http.MethodPost:
		h.handleComplete(w, r)
	case strings.HasPrefix(path, "completions/") && r.Method == http.MethodGet:
		h.handleCompletions(w, r, strings.TrimPrefix(path, "completions/"))
	default:
		h.logger.Warn("Unknown rewards operation", "method", r.Method, "path", r.URL.Path)
		writeError(w, h.logger, http.StatusNotFound, "Unknown rewards operation")
	}
}

func (h *RewardHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req CompleteGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.Warn("Completion rejected", "error", err, "address", req.UserAddress)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	// Losses yield zero without invoking the formula.
	var amount int64
	if req.Won {
		amount = reward.Calculate(req.Score, req.IsTrueEnding)
	}

	rec := storage.CompletionRecord{
		PlayerAddress: req.UserAddress,
		SessionRef:    req.GameSessionID,
		Score:         req.Score,
		Won:           req.Won,
		TrueEnding:    req.IsTrueEnding,
		RewardAmount:  amount,
		CompletedAt:   time.Now(),
	}

	if h.settlement != nil && req.Won && amount > 0 {
		claimID, err := h.settlement.SubmitClaim(r.Context(), services.RewardClaim{
			SessionRef:    req.GameSessionID,
			PlayerAddress: req.UserAddress,
			Won:           req.Won,
			Amount:        amount,
		})
		if err != nil {
			// The completion still stands; the claim can be retried on chain.
			h.logger.Error("Settlement submission failed", "error", err, "session", req.GameSessionID)
		} else {
			rec.ClaimID = claimID
		}
	}

	if err := h.store.SaveCompletion(r.Context(), rec); err != nil {
		h.logger.Error("Failed to save completion record", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to record completion")
		return
	}

	msg := "Game completed."
	if req.Won && amount > 0 {
		msg = "Game completed! Reward computed."
	}
	h.logger.Info("Game completion processed",
		"address", req.UserAddress,
		"session", req.GameSessionID,
		"won", req.Won,
		"reward", amount)

	writeJSON(w, h.logger, http.StatusOK, CompleteGameResponse{
		Success:       true,
		Message:       msg,
		UserAddress:   req.UserAddress,
		GameSessionID: req.GameSessionID,
		Score:         req.Score,
		Won:           req.Won,
		IsTrueEnding:  req.IsTrueEnding,
		RewardAmount:  amount,
		RewardClaimID: rec.ClaimID,
		CompletedAt:   rec.CompletedAt.Format(time.RFC3339),
	})
}

func (h *RewardHandler) handleCompletions(w http.ResponseWriter, r *http.Request, address string) {
	if err := reward.ValidateAddress(address); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.ListCompletions(r.Context(), address)
	if err != nil {
		h.logger.Error("Failed to list completions", "error", err, "address", address)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load completions")
		return
	}

	var total int64
	for _, rec := range records {
		if rec.Won {
			total += rec.RewardAmount
		}
	}
	writeJSON(w, h.logger, http.StatusOK, CompletionsResponse{
		UserAddress:  address,
		Completions:  records,
		TotalRewards: total,
	})
}
