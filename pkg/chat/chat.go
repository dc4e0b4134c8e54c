package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// ChatRolePlayer marks an utterance typed by the player.
	ChatRolePlayer = "player"
	// ChatRoleNPC marks a line spoken by a villager.
	ChatRoleNPC = "npc"
)

// DefaultOpener is used when the player sends an empty interact message.
const DefaultOpener = "I'd like to talk."

// ChatMessage is a single turn in a villager conversation.
// Memory is append-only; messages are never truncated or reordered.
type ChatMessage struct {
	Role    string `json:"role"` // "player" or "npc"
	Content string `json:"content"`
}

// NewGameRequest asks the API to create a game session.
type NewGameRequest struct {
	Difficulty               string `json:"difficulty,omitempty"`
	NumInaccessibleLocations int    `json:"num_inaccessible_locations,omitempty"`
}

// VillagerRef is the player-facing view of a villager at game creation.
// Names are hidden until the player meets the villager; only the title shows.
type VillagerRef struct {
	ID    string `json:"id"` // positional, e.g. "villager_0"
	Title string `json:"title"`
}

// NewGameResponse is returned by POST /v1/games.
type NewGameResponse struct {
	GameID                uuid.UUID     `json:"game_id"`
	InaccessibleLocations []string      `json:"inaccessible_locations"`
	Villagers             []VillagerRef `json:"villagers"`
}

// InteractRequest is one conversation turn with a villager.
type InteractRequest struct {
	VillagerID string `json:"villager_id"`
	Message    string `json:"message,omitempty"` // empty means DefaultOpener
}

func (r *InteractRequest) Validate() error {
	if r.VillagerID == "" {
		return fmt.Errorf("villager_id cannot be empty")
	}
	return nil
}

// InteractResponse carries the NPC line and suggested follow-ups.
type InteractResponse struct {
	VillagerID        string   `json:"villager_id"`
	VillagerName      string   `json:"villager_name"`
	NPCDialogue       string   `json:"npc_dialogue"`
	PlayerSuggestions []string `json:"player_suggestions,omitempty"`
}

// ConfirmItemRequest reports that the player acquired an item in the world.
type ConfirmItemRequest struct {
	ItemID string `json:"item_id"`
}

// ConfirmItemResponse acknowledges an item confirmation.
type ConfirmItemResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GuessRequest is the terminal guess at the hidden location.
type GuessRequest struct {
	LocationName string `json:"location_name"`
}

// GuessResponse resolves the game.
type GuessResponse struct {
	Message      string `json:"message"`
	IsCorrect    bool   `json:"is_correct"`
	IsTrueEnding bool   `json:"is_true_ending"`
}
