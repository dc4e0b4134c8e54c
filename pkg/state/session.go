package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hollowbrook/village-echoes/pkg/chat"
	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
)

// MaxFamiliarity is the top of the 0-5 trust scale.
const MaxFamiliarity = 5

// familiarityLabels describe each trust level for the oracle prompt.
var familiarityLabels = map[int]string{
	0: "Unknown",
	1: "Stranger",
	2: "Acquaintance",
	3: "Familiar Face",
	4: "Ally",
	5: "Confidant",
}

// FamiliarityLabel returns the human description of a familiarity level.
func FamiliarityLabel(level int) string {
	if l, ok := familiarityLabels[level]; ok {
		return l
	}
	return "Unknown"
}

// Status is the session lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// OpeningKnowledge seeds the knowledge summary of every new session.
const OpeningKnowledge = "You've just woken up in a cozy cottage. A kind old man named Arthur tells you he found you unconscious by a car wreck on the edge of the woods. He saw no sign of your friends. You remember a faint, desperate call in your mind: 'Help us... find us...'"

// GameSession is the aggregate owning all per-game state. Sessions are
// volatile: they live only as long as the process and their registry entry.
//
// A session carries its own exclusive lock. Callers hold it for the duration
// of any operation that reads and mutates session state (a full conversation
// turn included) and release it on every exit path. The registry has its own
// lock for the id-to-session map; the two are never held in reverse order.
type GameSession struct {
	mu sync.Mutex

	ID                    uuid.UUID                     `json:"id"`
	Difficulty            quest.Difficulty              `json:"difficulty"`
	StoryTheme            string                        `json:"story_theme,omitempty"`
	CorrectLocation       string                        `json:"correct_location"` // ground truth, never in player-facing responses until resolution
	InaccessibleLocations []string                      `json:"inaccessible_locations"`
	Villagers             []roster.Villager             `json:"villagers"`
	Graph                 *quest.Graph                  `json:"quest_graph"`
	Player                PlayerState                   `json:"player_state"`
	Memory                map[string][]chat.ChatMessage `json:"npc_memory"`
	Status                Status                        `json:"status"`
	CreatedAt             time.Time                     `json:"created_at"`
	UpdatedAt             time.Time                     `json:"updated_at"`
}

// NewGameSession creates an Active session for the sampled villagers.
// The quest graph is attached by the caller after it has been validated.
func NewGameSession(difficulty quest.Difficulty, villagers []roster.Villager) *GameSession {
	now := time.Now()
	gs := &GameSession{
		ID:         uuid.New(),
		Difficulty: difficulty,
		Villagers:  villagers,
		Player: PlayerState{
			Inventory:         make([]string, 0),
			FamiliarityLevels: make(map[string]int, len(villagers)),
			DiscoveredNodes:   make([]string, 0),
			KnowledgeSummary:  OpeningKnowledge,
		},
		Memory:    make(map[string][]chat.ChatMessage, len(villagers)),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, v := range villagers {
		gs.Memory[v.Name] = make([]chat.ChatMessage, 0)
		gs.Player.FamiliarityLevels[v.Name] = 0
	}
	return gs
}

// Lock acquires the session's exclusive turn lock.
func (gs *GameSession) Lock() { gs.mu.Lock() }

// Unlock releases the session's exclusive turn lock.
func (gs *GameSession) Unlock() { gs.mu.Unlock() }

// Villager resolves a villager by name within this session's sampled cast.
func (gs *GameSession) Villager(name string) *roster.Villager {
	for i := range gs.Villagers {
		if gs.Villagers[i].Name == name {
			return &gs.Villagers[i]
		}
	}
	return nil
}

// VillagerByIndex resolves a positional villager reference ("villager_{i}").
func (gs *GameSession) VillagerByIndex(i int) *roster.Villager {
	if i < 0 || i >= len(gs.Villagers) {
		return nil
	}
	return &gs.Villagers[i]
}

// AppendTurn records one player/npc exchange in a villager's memory.
// Memory is append-only.
func (gs *GameSession) AppendTurn(villager, playerLine, npcLine string) {
	gs.Memory[villager] = append(gs.Memory[villager],
		chat.ChatMessage{Role: chat.ChatRolePlayer, Content: playerLine},
		chat.ChatMessage{Role: chat.ChatRoleNPC, Content: npcLine},
	)
	gs.UpdatedAt = time.Now()
}
