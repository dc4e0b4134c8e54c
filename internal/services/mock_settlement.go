package services

import (
	"context"
	"sync"
)

// MockSettlement is a SettlementService for tests.
type MockSettlement struct {
	SubmitClaimFunc func(ctx context.Context, claim RewardClaim) (string, error)

	SubmitCalls []RewardClaim

	mu sync.Mutex
}

var _ SettlementService = (*MockSettlement)(nil)

func NewMockSettlement() *MockSettlement {
	return &MockSettlement{SubmitCalls: make([]RewardClaim, 0)}
}

func (m *MockSettlement) SubmitClaim(ctx context.Context, claim RewardClaim) (string, error) {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, claim)
	fn := m.SubmitClaimFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, claim)
	}
	return "claim-" + claim.SessionRef, nil
}

// SetSubmitError makes every SubmitClaim call fail.
func (m *MockSettlement) SetSubmitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitClaimFunc = func(ctx context.Context, claim RewardClaim) (string, error) {
		return "", err
	}
}

// Calls returns a copy of the submitted claims.
func (m *MockSettlement) Calls() []RewardClaim {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]RewardClaim, len(m.SubmitCalls))
	copy(calls, m.SubmitCalls)
	return calls
}
