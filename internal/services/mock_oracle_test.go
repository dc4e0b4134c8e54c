package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestMockOracle_Defaults(t *testing.T) {
	mock := NewMockOracle()
	ctx := context.Background()

	premise, err := mock.GeneratePremise(ctx, PremiseRequest{InaccessibleLocationCount: 5})
	if err != nil {
		t.Fatalf("GeneratePremise failed: %v", err)
	}
	if len(premise.InaccessibleLocations) != 5 {
		t.Errorf("got %d locations, want 5", len(premise.InaccessibleLocations))
	}
	found := false
	for _, loc := range premise.InaccessibleLocations {
		if loc == premise.CorrectLocation {
			found = true
		}
	}
	if !found {
		t.Error("correct location must be among the candidates")
	}

	// The default graph validates at every difficulty given enough villagers.
	villagers := roster.Sample(8, newTestRand())
	for _, d := range []quest.Difficulty{quest.DifficultyVeryEasy, quest.DifficultyEasy, quest.DifficultyMedium, quest.DifficultyHard} {
		graph, err := mock.GenerateQuestGraph(ctx, GraphRequest{Difficulty: d, Villagers: villagers})
		if err != nil {
			t.Fatalf("GenerateQuestGraph(%s) failed: %v", d, err)
		}
		if err := graph.Validate(d.KeyClueTarget()); err != nil {
			t.Errorf("default graph invalid at %s: %v", d, err)
		}
	}
}

func TestMockOracle_TurnDefaults(t *testing.T) {
	mock := NewMockOracle()
	ctx := context.Background()
	node := &quest.Node{ID: "node1", Content: "The bell cracked at midnight."}

	// Available and unlocked: the node is revealed.
	result, err := mock.GenerateTurn(ctx, TurnRequest{
		Villager:      roster.Villager{Name: "Old Mara"},
		AvailableNode: node,
	})
	if err != nil {
		t.Fatalf("GenerateTurn failed: %v", err)
	}
	if result.NodeRevealedID != "node1" {
		t.Errorf("NodeRevealedID = %q, want node1", result.NodeRevealedID)
	}
	if result.NPCDialogue != node.Content {
		t.Errorf("dialogue = %q, want node content", result.NPCDialogue)
	}

	// Locked: no reveal.
	result, err = mock.GenerateTurn(ctx, TurnRequest{
		Villager:      roster.Villager{Name: "Old Mara"},
		AvailableNode: node,
		Locked:        true,
	})
	if err != nil {
		t.Fatalf("GenerateTurn failed: %v", err)
	}
	if result.NodeRevealedID != "" {
		t.Error("locked turn must not reveal a node")
	}
}

func TestMockOracle_OverridesAndTracking(t *testing.T) {
	mock := NewMockOracle()
	ctx := context.Background()

	mock.SetTurnError(errors.New("boom"))
	if _, err := mock.GenerateTurn(ctx, TurnRequest{}); err == nil {
		t.Fatal("expected injected error")
	}

	if _, err := mock.GeneratePremise(ctx, PremiseRequest{InaccessibleLocationCount: 3}); err != nil {
		t.Fatalf("GeneratePremise failed: %v", err)
	}

	premiseCalls, graphCalls, turnCalls := mock.Calls()
	if len(premiseCalls) != 1 || len(graphCalls) != 0 || len(turnCalls) != 1 {
		t.Errorf("call counts = %d/%d/%d, want 1/0/1", len(premiseCalls), len(graphCalls), len(turnCalls))
	}
	if premiseCalls[0].InaccessibleLocationCount != 3 {
		t.Error("premise request not tracked")
	}
}
