package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
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

func listNPCs(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/v1/npcs")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		NPCs []string `json:"npcs"`
	}
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, err
	}
	return listResp.NPCs, nil
}

func getNPC(client *http.Client, baseURL string, id string) (*npc.Character, error) {
	resp, err := client.Get(baseURL + "/v1/npcs/" + id)
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
		return nil, fmt.Errorf("failed to get NPC: %s", errorResp.Error)
	}

	var c npc.Character
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, fmt.Errorf("failed to parse NPC response: %w", err)
	}
	return &c, nil
}

// CreateConversationRequest matches the API request structure
type CreateConversationRequest struct {
	NPCID string `json:"npc_id"`
}

func createConversation(client *http.Client, baseURL string, npcID string) (*chat.Response, error) {
	req := CreateConversationRequest{NPCID: npcID}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/conversations",
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
		return nil, fmt.Errorf("failed to start conversation: %s", errorResp.Error)
	}

	var created chat.Response
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse conversation response: %w", err)
	}
	return &created, nil
}

func sendChat(client *http.Client, baseURL string, conversationID uuid.UUID, message string) (*chat.Response, error) {
	chatReq := chat.Request{
		ConversationID: conversationID,
		Message:        message,
	}

	jsonData, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/chat",
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
		return nil, fmt.Errorf("chat request failed: %s", errorResp.Error)
	}

	var chatResp chat.Response
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

func getRelationship(client *http.Client, baseURL string, npcID string) (*relationship.State, error) {
	resp, err := client.Get(baseURL + "/v1/relationships/" + npcID)
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
		return nil, fmt.Errorf("failed to get relationship: %s", errorResp.Error)
	}

	var rel relationship.State
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("failed to parse relationship response: %w", err)
	}
	return &rel, nil
}
