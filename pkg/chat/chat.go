package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// Speaker roles used on conversation transcripts.
	SpeakerPlayer = "player"
	SpeakerNPC    = "npc"

	// Wire roles expected by the LLM API.
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single entry in a conversation. On a transcript the Role is a
// speaker role ("player" or "npc"); once mapped for the LLM it is a wire role
// ("user", "assistant", "system").
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToWireRole maps a transcript speaker role to the role the LLM API expects.
func ToWireRole(speaker string) string {
	if speaker == SpeakerPlayer {
		return RoleUser
	}
	return RoleAssistant
}

// Request is a chat turn request made by the player to the npc-engine api.
type Request struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Message        string    `json:"message"`
}

// Response is a chat turn response returned by the npc-engine api.
type Response struct {
	ConversationID uuid.UUID `json:"conversation_id,omitempty"`
	NPCID          string    `json:"npc_id,omitempty"`
	Message        string    `json:"message,omitempty"`
	Transcript     []Message `json:"transcript,omitempty"`
	Ejected        bool      `json:"ejected,omitempty"`
	Error          string    `json:"error,omitempty"`
}

func (r *Request) Validate() error {
	if r.ConversationID == uuid.Nil {
		return fmt.Errorf("conversation_id is required")
	}
	if r.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}
