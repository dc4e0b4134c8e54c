// Package engine orchestrates the game lifecycle: session bootstrap,
// conversation turns, item confirmation, and ending resolution.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/hollowbrook/village-echoes/internal/services"
	"github.com/hollowbrook/village-echoes/pkg/chat"
	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
	"github.com/hollowbrook/village-echoes/pkg/state"
	"github.com/hollowbrook/village-echoes/pkg/textfilter"
)

// Engine drives sessions against the narrative oracle. It owns no sessions
// itself; callers pass sessions from the registry.
type Engine struct {
	oracle services.NarrativeOracle
	filter *textfilter.DialogueFilter
	topics *textfilter.TopicCounter
	logger *slog.Logger

	rngMu sync.Mutex // rand.Rand is not safe for concurrent use
	rng   *rand.Rand
}

// New creates an engine. rng drives villager sampling only; pass a seeded
// source in tests for reproducibility.
func New(oracle services.NarrativeOracle, rng *rand.Rand, logger *slog.Logger) *Engine {
	return &Engine{
		oracle: oracle,
		filter: textfilter.NewDialogueFilter(),
		topics: textfilter.NewTopicCounter(textfilter.DefaultTopics),
		rng:    rng,
		logger: logger,
	}
}

// StartSession generates a complete game: premise, sampled villagers, and a
// validated quest graph. Any failure aborts the whole session; a session
// with an invalid graph is never returned.
func (e *Engine) StartSession(ctx context.Context, difficulty quest.Difficulty, numVillagers, numInaccessible int) (*state.GameSession, error) {
	premise, err := e.oracle.GeneratePremise(ctx, services.PremiseRequest{
		InaccessibleLocationCount: numInaccessible,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: premise: %v", ErrGenerationFailure, err)
	}
	if !contains(premise.InaccessibleLocations, premise.CorrectLocation) {
		return nil, fmt.Errorf("%w: correct location %q missing from candidates", ErrGenerationFailure, premise.CorrectLocation)
	}

	e.rngMu.Lock()
	villagers := roster.Sample(numVillagers, e.rng)
	e.rngMu.Unlock()
	gs := state.NewGameSession(difficulty, villagers)
	gs.StoryTheme = premise.StoryTheme
	gs.InaccessibleLocations = premise.InaccessibleLocations
	gs.CorrectLocation = premise.CorrectLocation

	graph, err := e.oracle.GenerateQuestGraph(ctx, services.GraphRequest{
		CorrectLocation: premise.CorrectLocation,
		StoryTheme:      premise.StoryTheme,
		Difficulty:      difficulty,
		Villagers:       villagers,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: quest graph: %v", ErrGenerationFailure, err)
	}
	if err := graph.Validate(difficulty.KeyClueTarget()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}
	gs.Graph = graph

	e.logger.Info("Session generated",
		"id", gs.ID.String(),
		"difficulty", difficulty,
		"villagers", len(villagers),
		"nodes", len(graph.Nodes))
	return gs, nil
}

// TakeTurn runs one conversation exchange with a villager. It holds the
// session lock for the whole turn. The turn is all-or-nothing: an oracle
// failure leaves every piece of prior state untouched.
func (e *Engine) TakeTurn(ctx context.Context, gs *state.GameSession, villagerName, playerInput string) (*services.TurnResult, error) {
	gs.Lock()
	defer gs.Unlock()

	if gs.Status != state.StatusActive {
		return nil, ErrSessionResolved
	}
	villager := gs.Villager(villagerName)
	if villager == nil {
		return nil, fmt.Errorf("%w: villager %q not in this session", ErrInvalidReference, villagerName)
	}
	if playerInput == "" {
		playerInput = chat.DefaultOpener
	}

	// The resolver runs fresh every turn; prior reveals change its result.
	node, locked := quest.Resolve(gs.Graph, villagerName, &gs.Player)
	familiarity := gs.Player.Familiarity(villagerName)
	exhausted := node == nil && familiarity == state.MaxFamiliarity

	result, err := e.oracle.GenerateTurn(ctx, services.TurnRequest{
		Villager:         *villager,
		History:          gs.Memory[villagerName],
		PlayerInput:      playerInput,
		AvailableNode:    node,
		Locked:           locked,
		Exhausted:        exhausted,
		Inventory:        gs.Player.Inventory,
		KnowledgeSummary: gs.Player.KnowledgeSummary,
		Familiarity:      familiarity,
		FamiliarityLabel: state.FamiliarityLabel(familiarity),
		TopicMentions:    e.topicMentions(gs, villagerName),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleFailure, err)
	}

	// Apply phase. Nothing above this point mutated the session.
	result.NPCDialogue = e.filter.Filter(result.NPCDialogue)
	gs.AppendTurn(villagerName, playerInput, result.NPCDialogue)

	if result.NewFamiliarity != nil {
		gs.Player.SetFamiliarity(villagerName, *result.NewFamiliarity)
	}

	if result.NodeRevealedID != "" {
		e.applyReveal(gs, result.NodeRevealedID)
	}
	return result, nil
}

// applyReveal records a revealed node and recomputes the knowledge summary.
// An id the graph doesn't know is an oracle hallucination: discarded and
// logged, never allowed to corrupt session state.
func (e *Engine) applyReveal(gs *state.GameSession, nodeID string) {
	if gs.Graph.Node(nodeID) == nil {
		e.logger.Warn("Oracle revealed unknown node id, discarding",
			"id", gs.ID.String(), "node_id", nodeID)
		return
	}
	if !gs.Player.DiscoverNode(nodeID) {
		return
	}
	gs.Player.KnowledgeSummary = gs.Graph.Summarize(gs.Player.DiscoveredSet())
}

// topicMentions counts topic pressure over the whole transcript with this
// villager. Both sides count: an NPC dwelling on a subject raises the
// pressure as much as the player pressing it.
func (e *Engine) topicMentions(gs *state.GameSession, villagerName string) map[string]int {
	msgs := gs.Memory[villagerName]
	utterances := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		utterances = append(utterances, msg.Content)
	}
	return e.topics.Count(utterances)
}

// ConfirmItem adds an item to the inventory. The item must be the reward of
// an already-discovered FetchItem node. Confirming twice is idempotent.
func (e *Engine) ConfirmItem(gs *state.GameSession, itemID string) error {
	gs.Lock()
	defer gs.Unlock()

	if gs.Status != state.StatusActive {
		return ErrSessionResolved
	}
	if !e.itemOnDiscoveredQuest(gs, itemID) {
		return fmt.Errorf("%w: no discovered fetch quest rewards item %q", ErrInvalidReference, itemID)
	}
	if gs.Player.AddItem(itemID) {
		e.logger.Debug("Item confirmed", "id", gs.ID.String(), "item", itemID)
	}
	return nil
}

func (e *Engine) itemOnDiscoveredQuest(gs *state.GameSession, itemID string) bool {
	for i := range gs.Graph.Nodes {
		n := &gs.Graph.Nodes[i]
		if n.Type == quest.NodeFetchItem && n.RewardItem == itemID && gs.Player.Discovered(n.ID) {
			return true
		}
	}
	return false
}

// GuessOutcome is the terminal classification of a session.
type GuessOutcome struct {
	IsCorrect    bool
	IsTrueEnding bool
	Message      string
}

// ResolveGuess classifies the final guess and marks the session resolved.
// Correctness is exact case-sensitive equality with the hidden location.
// The true ending requires every key clue, not just some, and is independent
// of correctness. Classification reads discovered nodes without mutating them.
func (e *Engine) ResolveGuess(gs *state.GameSession, location string) (*GuessOutcome, error) {
	gs.Lock()
	defer gs.Unlock()

	if gs.Status != state.StatusActive {
		return nil, ErrSessionResolved
	}

	outcome := &GuessOutcome{
		IsCorrect:    location == gs.CorrectLocation,
		IsTrueEnding: e.allKeyCluesFound(gs),
	}
	outcome.Message = endingMessage(outcome, location, gs.CorrectLocation)
	gs.Status = state.StatusResolved

	e.logger.Info("Session resolved",
		"id", gs.ID.String(),
		"correct", outcome.IsCorrect,
		"true_ending", outcome.IsTrueEnding)
	return outcome, nil
}

func (e *Engine) allKeyCluesFound(gs *state.GameSession) bool {
	for _, id := range gs.Graph.KeyClueIDs() {
		if !gs.Player.Discovered(id) {
			return false
		}
	}
	return true
}

func endingMessage(outcome *GuessOutcome, guessed, correct string) string {
	if !outcome.IsCorrect {
		return fmt.Sprintf("You find nothing but silence and dust at %s. Your friends are gone forever. The correct location was %s. GAME OVER.", guessed, correct)
	}
	msg := fmt.Sprintf("You head towards %s and find your friends, alive. ", guessed)
	if outcome.IsTrueEnding {
		return msg + "You understand the full, dark truth of the village. CONGRATULATIONS, TRUE ENDING!"
	}
	return msg + "You never fully understood why they were taken. YOU WIN, BUT THE MYSTERY REMAINS..."
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
