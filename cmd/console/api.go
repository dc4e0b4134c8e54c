package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/hollowbrook/village-echoes/pkg/chat"
	"github.com/hollowbrook/village-echoes/pkg/quest"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func createGame(client *http.Client, baseURL string, difficulty quest.Difficulty) (*chat.NewGameResponse, error) {
	req := chat.NewGameRequest{
		Difficulty: string(difficulty),
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/games",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to create game: %s", errorResp.Error)
	}

	var game chat.NewGameResponse
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("failed to parse game response: %w", err)
	}
	return &game, nil
}

func sendInteract(client *http.Client, baseURL string, gameID uuid.UUID, villagerID, message string) (*chat.InteractResponse, error) {
	req := chat.InteractRequest{
		VillagerID: villagerID,
		Message:    message,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/games/%s/interact", baseURL, gameID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("interaction failed: %s", errorResp.Error)
	}

	var interactResp chat.InteractResponse
	if err := json.Unmarshal(body, &interactResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &interactResp, nil
}

func confirmItem(client *http.Client, baseURL string, gameID uuid.UUID, itemID string) (*chat.ConfirmItemResponse, error) {
	req := chat.ConfirmItemRequest{
		ItemID: itemID,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/games/%s/items", baseURL, gameID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("item confirmation failed: %s", errorResp.Error)
	}

	var itemResp chat.ConfirmItemResponse
	if err := json.Unmarshal(body, &itemResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &itemResp, nil
}

func submitGuess(client *http.Client, baseURL string, gameID uuid.UUID, location string) (*chat.GuessResponse, error) {
	req := chat.GuessRequest{
		LocationName: location,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/games/%s/guess", baseURL, gameID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("guess failed: %s", errorResp.Error)
	}

	var guessResp chat.GuessResponse
	if err := json.Unmarshal(body, &guessResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &guessResp, nil
}
