package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// OneChainService implements SettlementService against the settlement bridge,
// which signs and executes the complete_game move call with the admin wallet.
type OneChainService struct {
	baseURL    string
	packageID  string
	treasuryID string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ SettlementService = (*OneChainService)(nil)

type oneChainClaimRequest struct {
	PackageID  string `json:"package_id"`
	TreasuryID string `json:"treasury_id"`
	SessionRef string `json:"game_session_id"`
	Player     string `json:"player_address"`
	Won        bool   `json:"won"`
	Amount     int64  `json:"reward_amount"`
}

type oneChainClaimResponse struct {
	ClaimID string `json:"claim_id"`
	Error   string `json:"error,omitempty"`
}

// NewOneChainService creates a settlement client for the bridge at baseURL.
func NewOneChainService(baseURL, packageID, treasuryID string, logger *slog.Logger) *OneChainService {
	return &OneChainService{
		baseURL:    baseURL,
		packageID:  packageID,
		treasuryID: treasuryID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (o *OneChainService) SubmitClaim(ctx context.Context, claim RewardClaim) (string, error) {
	reqBody, err := json.Marshal(oneChainClaimRequest{
		PackageID:  o.packageID,
		TreasuryID: o.treasuryID,
		SessionRef: claim.SessionRef,
		Player:     claim.PlayerAddress,
		Won:        claim.Won,
		Amount:     claim.Amount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal claim: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/claims", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("settlement request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			o.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read settlement response: %w", err)
	}

	var claimResp oneChainClaimResponse
	if err := json.Unmarshal(body, &claimResp); err != nil {
		return "", fmt.Errorf("failed to parse settlement response: %w", err)
	}
	if claimResp.Error != "" {
		return "", fmt.Errorf("settlement error: %s", claimResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("settlement returned status %d", resp.StatusCode)
	}
	if claimResp.ClaimID == "" {
		return "", fmt.Errorf("settlement returned no claim id")
	}

	o.logger.Info("Reward claim created", "claim_id", claimResp.ClaimID, "player", claim.PlayerAddress, "amount", claim.Amount)
	return claimResp.ClaimID, nil
}
