package services

import "context"

// RewardClaim is a request to settle a won game on chain.
type RewardClaim struct {
	SessionRef    string `json:"game_session_id"`
	PlayerAddress string `json:"player_address"`
	Won           bool   `json:"won"`
	Amount        int64  `json:"reward_amount"`
}

// SettlementService is the blockchain settlement capability. A single
// operation submits a claim and returns the created claim object id.
type SettlementService interface {
	// SubmitClaim creates an on-chain reward claim and returns its id.
	SubmitClaim(ctx context.Context, claim RewardClaim) (string, error)
}
