// Package reward computes completion rewards and validates reward inputs.
// Amounts are integers in 1e-9 token units, matching the on-chain contract.
package reward

import (
	"fmt"
	"strings"
)

const (
	BaseReward      int64 = 100_000_000   // 0.1
	ScoreRate       int64 = 100_000       // 0.0001 per score point
	TrueEndingBonus int64 = 1_000_000_000 // 1.0
	MinReward       int64 = 100_000_000   // 0.1
	MaxReward       int64 = 5_000_000_000 // 5.0

	// MaxScore bounds submitted scores.
	MaxScore int64 = 1_000_000
)

// Calculate maps a winning outcome to a bounded reward amount.
// Deterministic and idempotent; losses are handled by the caller and never
// reach the formula.
func Calculate(score int64, trueEnding bool) int64 {
	amount := BaseReward + score*ScoreRate
	if trueEnding {
		amount += TrueEndingBonus
	}
	if amount < MinReward {
		amount = MinReward
	}
	if amount > MaxReward {
		amount = MaxReward
	}
	return amount
}

// ValidateAddress checks a wallet address: "0x" prefix followed by at most
// 64 hex digits. Validation happens before any reward computation.
func ValidateAddress(addr string) error {
	if !strings.HasPrefix(addr, "0x") {
		return fmt.Errorf("address must start with 0x")
	}
	hex := addr[2:]
	if len(hex) == 0 || len(hex) > 64 {
		return fmt.Errorf("address must have 1-64 hex digits, got %d", len(hex))
	}
	for _, r := range hex {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return fmt.Errorf("address contains non-hex character %q", r)
		}
	}
	return nil
}

// ValidateScore checks a submitted score is within [0, MaxScore].
func ValidateScore(score int64) error {
	if score < 0 {
		return fmt.Errorf("score cannot be negative")
	}
	if score > MaxScore {
		return fmt.Errorf("score %d exceeds maximum %d", score, MaxScore)
	}
	return nil
}

// ValidateSessionRef checks the external session reference is plausible.
func ValidateSessionRef(ref string) error {
	if len(ref) < 10 {
		return fmt.Errorf("session reference too short")
	}
	return nil
}
