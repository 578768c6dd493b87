package services

import (
	"context"

	"github.com/tavernkeep/npc-engine/pkg/chat"
)

// LLMService defines the interface for the remote text-generation API.
// A single attempt is made per player message; callers handle failures by
// degrading to in-character fallback lines.
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a single NPC reply for the given wire messages
	Chat(ctx context.Context, messages []chat.Message) (string, error)
}
