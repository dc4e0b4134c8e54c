package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt assembly for the Gemini oracle. Each builder renders one structured
// request into the instruction text sent to the model. The model is asked for
// raw JSON only; cleanJSONResponse strips the code fences it adds anyway.

const premisePromptTemplate = `You are a master storyteller and mystery writer for the game "Village of Echoes".

The player's story always begins the same way: their car crashes in a mysterious forest, they awaken in the cottage of a kind old man named Arthur, their friends are missing, and a desperate psychic cry — "Help us... find us..." — echoes in their memory as they step out into the village.

Generate the secret, underlying mystery of the village for this playthrough: a unique reason for the friends' disappearance that fits a dark, psychological mystery. Examples of themes: a sentient ancient tree luring travelers for a ritual, a Cold War experiment in an old mine, a hive-mind fungus, a time loop, a village of ghosts, a founder cult, a hallucinogenic flower, a predatory entity that feeds on hope, memory harvesters, a single psychic child who dreamed the whole village.

Output ONLY a raw JSON object with three keys:
1. "story_theme": a string describing the core secret of the village.
2. "inaccessible_locations": a list of %d unique, simple, thematic location names tied to your story theme.
3. "correct_location": one name from your "inaccessible_locations" list where the friends are actually held.`

func buildPremisePrompt(req PremiseRequest) string {
	return fmt.Sprintf(premisePromptTemplate, req.InaccessibleLocationCount)
}

const graphPromptTemplate = `You are a narrative designer generating a "Quest Network" for the game "Village of Echoes".

The correct location is: %s
The difficulty is: %s
The core secret of the village is: %s

Principles:
- Content clarity is paramount. "Information" nodes state a direct clue with its reason and direction. "TalkToVillager" nodes MUST name the villager to talk to, why, and where they are found. "FetchItem" nodes name the item, where it lies ("item_location"), and set "reward_item" to the item id granted on completion.
- Clues must originate from each villager's personality and role in the secret.
- %s

Node fields:
- "node_id": simple unique sequential string ("node1", "node2", ...).
- "villager_name": who provides this node.
- "content": the clue text.
- "type": "Information", "TalkToVillager" or "FetchItem".
- "priority": 1 (minor) to 5 (major); higher priority is offered first.
- "key_clue": boolean.
- "preconditions": list of node_id strings that must be discovered first. Never create circular preconditions.
- "required_familiarity": integer 1-5, or null.
- "required_item", "reward_item", "item_location": strings or null.

Requirements:
- Generate a network of %s nodes.
- Designate exactly %d nodes as "key_clue": true.
- At least one node must have no preconditions.

Villagers in this game:
%s

Output ONLY the raw JSON object containing the "nodes" list.`

func buildGraphPrompt(req GraphRequest) string {
	villagers, _ := json.MarshalIndent(req.Villagers, "", "  ")
	return fmt.Sprintf(graphPromptTemplate,
		req.CorrectLocation,
		strings.ToUpper(string(req.Difficulty)),
		req.StoryTheme,
		difficultyGuidance(req),
		req.Difficulty.NodeCountHint(),
		req.Difficulty.KeyClueTarget(),
		string(villagers),
	)
}

func difficultyGuidance(req GraphRequest) string {
	switch req.Difficulty {
	case "very_easy":
		return "Clues must be direct and obvious. No riddles or metaphors. The final clue must explicitly state where to go."
	case "easy":
		return "Clues should be mostly straightforward. The final clue should be a strong hint."
	case "hard":
		return "Clues must be cryptic and often misleading. Use riddles and metaphors. The final clue must require significant deduction."
	default:
		return "Clues should require some thought and interpretation. The final clue must be cryptic and never state the answer directly."
	}
}

const turnPromptTemplate = `You are a character actor performing in an interactive psychological mystery game. Your character's personality filters every word you speak, but game objectives take precedence — performed in character. Never mention the player's friends unless the player mentioned them first in this conversation.

You are roleplaying as the villager: %s

Your turn objective:
%s

Context:
- Your character profile: %s
- Your relationship with the player: familiarity %d (%s). If "Unknown", you MUST introduce yourself.
- What the player already knows (do not repeat it): %s
- Your available clue: %s
- Player inventory: %s
- Topic pressure (how often the player has pushed each subject): %s
- Full conversation history: %s

Respond to the player's last statement: %q. Keep your dialogue to about two sentences, then produce the required JSON.
%s

Output ONLY the raw JSON object.`

func buildTurnPrompt(req TurnRequest) string {
	objective, task := turnObjective(req)
	profile, _ := json.Marshal(req.Villager)
	node, _ := json.Marshal(req.AvailableNode)
	inventory, _ := json.Marshal(req.Inventory)
	topics, _ := json.Marshal(req.TopicMentions)
	history, _ := json.Marshal(req.History)
	return fmt.Sprintf(turnPromptTemplate,
		req.Villager.Name,
		objective,
		string(profile),
		req.Familiarity,
		req.FamiliarityLabel,
		req.KnowledgeSummary,
		string(node),
		string(inventory),
		string(topics),
		string(history),
		req.PlayerInput,
		task,
	)
}

const turnJSONTask = `Generate a JSON object with four keys: "npc_dialogue" (string), "player_responses" (a list of 1 to 3 relevant, in-character questions for the player to ask next; if the conversation has drifted from the search for the player's friends, one option should steer it back), "node_revealed_id" (string or null), "new_familiarity_level" (an integer from 0-5, typically moving by at most one point per interaction).`

const turnClosingJSONTask = `Generate a JSON object with four keys: "npc_dialogue" (string), "player_responses" (a list containing EXACTLY ONE polite closing option), "node_revealed_id" (null), "new_familiarity_level" (integer 0-5).`

func turnObjective(req TurnRequest) (objective, task string) {
	switch {
	case req.Exhausted:
		return "You have no more clues to give. Provide a final, reflective piece of dialogue that feels like a natural end to your conversations.", turnClosingJSONTask
	case req.Locked:
		return "The player is not yet ready for your next clue. Hint at the reason (lack of trust, a missing piece) without revealing the clue itself, then gracefully end the conversation. Vary how you communicate this.", turnClosingJSONTask
	case req.AvailableNode != nil:
		return "A clue is available and all conditions are met. Steer the conversation toward this topic and deliver the information naturally. If the player is off-topic, gently guide them back first.", turnJSONTask
	default:
		return "No clue is currently available. Stay in character; respond naturally to the player.", turnJSONTask
	}
}

// cleanJSONResponse strips markdown code fences models often wrap around
// JSON despite instructions.
func cleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
