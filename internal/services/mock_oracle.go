package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/hollowbrook/village-echoes/pkg/quest"
)

// MockOracle is a NarrativeOracle for tests and oracle-less deployments.
// Behavior is overridable per method; calls are tracked.
type MockOracle struct {
	GeneratePremiseFunc    func(ctx context.Context, req PremiseRequest) (*Premise, error)
	GenerateQuestGraphFunc func(ctx context.Context, req GraphRequest) (*quest.Graph, error)
	GenerateTurnFunc       func(ctx context.Context, req TurnRequest) (*TurnResult, error)

	PremiseCalls []PremiseRequest
	GraphCalls   []GraphRequest
	TurnCalls    []TurnRequest

	mu sync.Mutex // protects all fields above
}

var _ NarrativeOracle = (*MockOracle)(nil)

// NewMockOracle creates a mock oracle with deterministic defaults.
func NewMockOracle() *MockOracle {
	return &MockOracle{
		PremiseCalls: make([]PremiseRequest, 0),
		GraphCalls:   make([]GraphRequest, 0),
		TurnCalls:    make([]TurnRequest, 0),
	}
}

func (m *MockOracle) GeneratePremise(ctx context.Context, req PremiseRequest) (*Premise, error) {
	m.mu.Lock()
	m.PremiseCalls = append(m.PremiseCalls, req)
	fn := m.GeneratePremiseFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	n := req.InaccessibleLocationCount
	if n < 1 {
		n = 3
	}
	locations := make([]string, 0, n)
	for i := 0; i < n; i++ {
		locations = append(locations, fmt.Sprintf("Hidden Place %d", i+1))
	}
	return &Premise{
		StoryTheme:            "The village harvests memories from outsiders.",
		InaccessibleLocations: locations,
		CorrectLocation:       locations[0],
	}, nil
}

func (m *MockOracle) GenerateQuestGraph(ctx context.Context, req GraphRequest) (*quest.Graph, error) {
	m.mu.Lock()
	m.GraphCalls = append(m.GraphCalls, req)
	fn := m.GenerateQuestGraphFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	// Default graph: one chain per villager, key clues spread across the
	// first villagers so it validates at any difficulty.
	target := req.Difficulty.KeyClueTarget()
	graph := &quest.Graph{Nodes: make([]quest.Node, 0, len(req.Villagers)*2)}
	for i, v := range req.Villagers {
		first := fmt.Sprintf("node%d", i*2+1)
		second := fmt.Sprintf("node%d", i*2+2)
		graph.Nodes = append(graph.Nodes,
			quest.Node{
				ID:       first,
				Villager: v.Name,
				Content:  fmt.Sprintf("%s mentions something odd about the village.", v.Name),
				Type:     quest.NodeInformation,
				Priority: 3,
				KeyClue:  i < target,
			},
			quest.Node{
				ID:            second,
				Villager:      v.Name,
				Content:       fmt.Sprintf("%s points you deeper into the mystery.", v.Name),
				Type:          quest.NodeInformation,
				Priority:      5,
				Preconditions: []string{first},
			},
		)
	}
	return graph, nil
}

func (m *MockOracle) GenerateTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	m.mu.Lock()
	m.TurnCalls = append(m.TurnCalls, req)
	fn := m.GenerateTurnFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	result := &TurnResult{
		NPCDialogue:     fmt.Sprintf("%s nods slowly and studies you.", req.Villager.Name),
		PlayerResponses: []string{"Tell me more.", "Have you seen my friends?"},
	}
	if req.AvailableNode != nil && !req.Locked && !req.Exhausted {
		result.NPCDialogue = req.AvailableNode.Content
		result.NodeRevealedID = req.AvailableNode.ID
	}
	return result, nil
}

// SetTurnError makes every GenerateTurn call fail.
func (m *MockOracle) SetTurnError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateTurnFunc = func(ctx context.Context, req TurnRequest) (*TurnResult, error) {
		return nil, err
	}
}

// Calls returns copies of the tracked calls.
func (m *MockOracle) Calls() ([]PremiseRequest, []GraphRequest, []TurnRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	premise := make([]PremiseRequest, len(m.PremiseCalls))
	copy(premise, m.PremiseCalls)
	graph := make([]GraphRequest, len(m.GraphCalls))
	copy(graph, m.GraphCalls)
	turns := make([]TurnRequest, len(m.TurnCalls))
	copy(turns, m.TurnCalls)
	return premise, graph, turns
}
