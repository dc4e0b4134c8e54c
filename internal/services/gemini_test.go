package services

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/hollowbrook/village-echoes/pkg/chat"
	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func TestNewGeminiService(t *testing.T) {
	service := NewGeminiService("test-api-key", "test-model", testLogger())

	if service.apiKey != "test-api-key" {
		t.Errorf("Expected apiKey test-api-key, got %s", service.apiKey)
	}
	if service.modelName != "test-model" {
		t.Errorf("Expected modelName test-model, got %s", service.modelName)
	}
	if service.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}

	// Empty model falls back to the default.
	service = NewGeminiService("key", "", testLogger())
	if service.modelName != DefaultGeminiModel {
		t.Errorf("Expected default model %s, got %s", DefaultGeminiModel, service.modelName)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildPremisePrompt(t *testing.T) {
	prompt := buildPremisePrompt(PremiseRequest{InaccessibleLocationCount: 4})

	if !strings.Contains(prompt, "4 unique") {
		t.Error("prompt missing the requested location count")
	}
	if !strings.Contains(prompt, "story_theme") || !strings.Contains(prompt, "correct_location") {
		t.Error("prompt missing required output keys")
	}
}

func TestBuildGraphPrompt(t *testing.T) {
	prompt := buildGraphPrompt(GraphRequest{
		CorrectLocation: "The Drowned Mill",
		StoryTheme:      "The village harvests memories.",
		Difficulty:      quest.DifficultyHard,
		Villagers: []roster.Villager{
			{Name: "Old Mara", Title: "A gruff woman by the river"},
		},
	})

	for _, want := range []string{
		"The Drowned Mill",
		"HARD",
		"The village harvests memories.",
		"35-40",
		"exactly 6 nodes",
		"Old Mara",
		"cryptic and often misleading",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("graph prompt missing %q", want)
		}
	}
}

func TestBuildTurnPrompt(t *testing.T) {
	node := &quest.Node{ID: "node3", Villager: "Old Mara", Content: "The mill flooded on purpose."}

	tests := []struct {
		name        string
		req         TurnRequest
		wantPhrases []string
	}{
		{
			name: "available node",
			req: TurnRequest{
				Villager:         roster.Villager{Name: "Old Mara"},
				PlayerInput:      "What happened at the mill?",
				AvailableNode:    node,
				Familiarity:      2,
				FamiliarityLabel: "Acquaintance",
			},
			wantPhrases: []string{"A clue is available", "Old Mara", "node3", "player_responses"},
		},
		{
			name: "locked by trust",
			req: TurnRequest{
				Villager:      roster.Villager{Name: "Old Mara"},
				PlayerInput:   "Tell me.",
				AvailableNode: node,
				Locked:        true,
			},
			wantPhrases: []string{"not yet ready", "EXACTLY ONE polite closing option"},
		},
		{
			name: "exhausted",
			req: TurnRequest{
				Villager:    roster.Villager{Name: "Old Mara"},
				PlayerInput: "Anything else?",
				Exhausted:   true,
			},
			wantPhrases: []string{"no more clues to give", "EXACTLY ONE polite closing option"},
		},
		{
			name: "nothing available",
			req: TurnRequest{
				Villager:    roster.Villager{Name: "Old Mara"},
				PlayerInput: "Nice weather.",
				History: []chat.ChatMessage{
					{Role: chat.ChatRolePlayer, Content: "Hello."},
					{Role: chat.ChatRoleNPC, Content: "Hmph."},
				},
			},
			wantPhrases: []string{"No clue is currently available", "Hmph."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildTurnPrompt(tt.req)
			for _, want := range tt.wantPhrases {
				if !strings.Contains(prompt, want) {
					t.Errorf("turn prompt missing %q", want)
				}
			}
			if !strings.Contains(prompt, tt.req.PlayerInput) {
				t.Error("turn prompt missing the player's utterance")
			}
		})
	}
}
