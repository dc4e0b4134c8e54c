package services

import (
	"context"

	"github.com/hollowbrook/village-echoes/pkg/chat"
	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
)

// NarrativeOracle is the external generative text capability. The engine
// depends only on these structured contracts, never on how text is produced.
type NarrativeOracle interface {
	// GeneratePremise invents the session's hidden mystery: the story theme,
	// the candidate locations, and which of them holds the truth.
	GeneratePremise(ctx context.Context, req PremiseRequest) (*Premise, error)

	// GenerateQuestGraph builds the full quest network for a session.
	// The result is validated by the caller before any session goes live.
	GenerateQuestGraph(ctx context.Context, req GraphRequest) (*quest.Graph, error)

	// GenerateTurn performs one conversation exchange in character.
	GenerateTurn(ctx context.Context, req TurnRequest) (*TurnResult, error)
}

// PremiseRequest parameterizes mystery generation.
type PremiseRequest struct {
	InaccessibleLocationCount int `json:"num_inaccessible_locations"`
}

// Premise is the generated secret underlying one playthrough.
type Premise struct {
	StoryTheme            string   `json:"story_theme"`
	InaccessibleLocations []string `json:"inaccessible_locations"`
	CorrectLocation       string   `json:"correct_location"`
}

// GraphRequest parameterizes quest network generation.
type GraphRequest struct {
	CorrectLocation string            `json:"correct_location"`
	StoryTheme      string            `json:"story_theme"`
	Difficulty      quest.Difficulty  `json:"difficulty"`
	Villagers       []roster.Villager `json:"villagers"`
}

// TurnRequest carries everything the oracle needs to perform one villager
// turn: the profile, the full per-villager memory, the player's utterance,
// the resolver outcome, and the player's current standing.
type TurnRequest struct {
	Villager         roster.Villager    `json:"villager_profile"`
	History          []chat.ChatMessage `json:"chat_history"`
	PlayerInput      string             `json:"player_last_response"`
	AvailableNode    *quest.Node        `json:"available_node,omitempty"`
	Locked           bool               `json:"is_familiarity_locked"`
	Exhausted        bool               `json:"is_conversation_exhausted"`
	Inventory        []string           `json:"player_inventory"`
	KnowledgeSummary string             `json:"player_knowledge_summary"`
	Familiarity      int                `json:"familiarity_level"`
	FamiliarityLabel string             `json:"familiarity_description"`
	TopicMentions    map[string]int     `json:"topic_mentions,omitempty"`
}

// TurnResult is the oracle's structured output for one turn. Fields are
// validated and clamped on receipt; the oracle is never trusted verbatim.
type TurnResult struct {
	NPCDialogue     string   `json:"npc_dialogue"`
	PlayerResponses []string `json:"player_responses"`
	NodeRevealedID  string   `json:"node_revealed_id,omitempty"`
	NewFamiliarity  *int     `json:"new_familiarity_level,omitempty"`
}
