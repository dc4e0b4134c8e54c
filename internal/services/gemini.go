package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hollowbrook/village-echoes/pkg/quest"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultGeminiModel       = "gemini-2.5-flash-lite"
	DefaultGeminiTemperature = 0.7
)

// GeminiService implements NarrativeOracle against the Gemini REST API.
type GeminiService struct {
	apiKey     string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ NarrativeOracle = (*GeminiService)(nil)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiService creates a Gemini-backed oracle.
func NewGeminiService(apiKey, modelName string, logger *slog.Logger) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// generateJSON sends a prompt and unmarshals the model's JSON reply into out.
func (g *GeminiService) generateJSON(ctx context.Context, prompt string, out interface{}) error {
	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      DefaultGeminiTemperature,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, g.modelName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			g.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if geminiResp.Error != nil {
		return fmt.Errorf("gemini API error (%d %s): %s",
			geminiResp.Error.Code, geminiResp.Error.Status, geminiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("gemini returned no candidates")
	}

	text := cleanJSONResponse(geminiResp.Candidates[0].Content.Parts[0].Text)
	if text == "" || text == "{}" {
		return fmt.Errorf("gemini returned empty structured output")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("gemini returned unparseable structured output: %w", err)
	}
	return nil
}

func (g *GeminiService) GeneratePremise(ctx context.Context, req PremiseRequest) (*Premise, error) {
	var premise Premise
	if err := g.generateJSON(ctx, buildPremisePrompt(req), &premise); err != nil {
		return nil, err
	}
	if premise.StoryTheme == "" || premise.CorrectLocation == "" || len(premise.InaccessibleLocations) == 0 {
		return nil, fmt.Errorf("premise generation returned incomplete output")
	}
	return &premise, nil
}

func (g *GeminiService) GenerateQuestGraph(ctx context.Context, req GraphRequest) (*quest.Graph, error) {
	var graph quest.Graph
	if err := g.generateJSON(ctx, buildGraphPrompt(req), &graph); err != nil {
		return nil, err
	}
	if len(graph.Nodes) == 0 {
		return nil, fmt.Errorf("graph generation returned no nodes")
	}
	return &graph, nil
}

func (g *GeminiService) GenerateTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	var result TurnResult
	if err := g.generateJSON(ctx, buildTurnPrompt(req), &result); err != nil {
		return nil, err
	}
	if result.NPCDialogue == "" {
		return nil, fmt.Errorf("turn generation returned empty dialogue")
	}
	return &result, nil
}
