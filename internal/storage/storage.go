package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

// GameStore is the external game-state store: gold, army, artifacts and
// tavern bans. All mutation is funneled through these methods; nothing else
// writes this state.
type GameStore interface {
	Gold(ctx context.Context, playerID string) (int, error)
	AddGold(ctx context.Context, playerID string, amount int) error
	SpendGold(ctx context.Context, playerID string, amount int) error

	RecruitUnit(ctx context.Context, playerID string, unit string, count int) error
	Army(ctx context.Context, playerID string) (map[string]int, error)

	AddArtifact(ctx context.Context, playerID string, artifact string) error
	Artifacts(ctx context.Context, playerID string) ([]string, error)

	BanFromTavern(ctx context.Context, playerID string, mapName, location string) error
	IsBannedFrom(ctx context.Context, playerID string, mapName, location string) (bool, error)
}

// Storage combines conversation and relationship persistence, the character
// registry, and the game-state store.
//
// Lookups for absent optional data (unknown character ID, empty roster,
// missing relationship) return nil, not an error.
type Storage interface {
	// Conversations are session state.
	SaveConversation(ctx context.Context, conv *tavern.Conversation) error
	LoadConversation(ctx context.Context, id uuid.UUID) (*tavern.Conversation, error)
	DeleteConversation(ctx context.Context, id uuid.UUID) error

	// Relationships are durable, keyed per (NPC, player) pair.
	SaveRelationship(ctx context.Context, npcID, playerID string, s *relationship.State) error
	LoadRelationship(ctx context.Context, npcID, playerID string) (*relationship.State, error)

	// Character registry (static definitions).
	GetCharacter(ctx context.Context, id string) (*npc.Character, error)
	ListCharacters(ctx context.Context) ([]string, error)
	TavernRoster(ctx context.Context, mapName, location string) ([]*npc.Character, error)

	GameStore

	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error
}
