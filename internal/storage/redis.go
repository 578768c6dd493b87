package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

const conversationTTL = time.Hour

// RedisStorage implements the Storage interface using Redis for mutable
// state (conversations, relationships, game store) and the filesystem for
// static character definitions.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Conversation operations (Redis-backed)

func conversationKey(id uuid.UUID) string {
	return "conversation:" + id.String()
}

func (r *RedisStorage) SaveConversation(ctx context.Context, conv *tavern.Conversation) error {
	conv.UpdatedAt = time.Now()

	data, err := json.Marshal(conv)
	if err != nil {
		r.logger.Error("Failed to marshal conversation", "uuid", conv.ID, "error", err)
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := r.client.Set(ctx, conversationKey(conv.ID), string(data), conversationTTL).Err(); err != nil {
		r.logger.Error("Failed to save conversation", "uuid", conv.ID, "error", err)
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadConversation(ctx context.Context, id uuid.UUID) (*tavern.Conversation, error) {
	cmd := r.client.Get(ctx, conversationKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Conversation not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load conversation", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	var conv tavern.Conversation
	if err := json.Unmarshal([]byte(cmd.Val()), &conv); err != nil {
		r.logger.Error("Failed to unmarshal conversation", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conv, nil
}

func (r *RedisStorage) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, conversationKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete conversation", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// Relationship operations (Redis-backed, no TTL; relationships are durable)

func relationshipKey(npcID, playerID string) string {
	return fmt.Sprintf("relationship:%s:%s", npcID, playerID)
}

func (r *RedisStorage) SaveRelationship(ctx context.Context, npcID, playerID string, s *relationship.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal relationship: %w", err)
	}

	if err := r.client.Set(ctx, relationshipKey(npcID, playerID), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save relationship", "npc_id", npcID, "error", err)
		return fmt.Errorf("failed to save relationship: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadRelationship(ctx context.Context, npcID, playerID string) (*relationship.State, error) {
	cmd := r.client.Get(ctx, relationshipKey(npcID, playerID))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load relationship", "npc_id", npcID, "error", err)
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}

	var s relationship.State
	if err := json.Unmarshal([]byte(cmd.Val()), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal relationship: %w", err)
	}
	return &s, nil
}

// Character registry (filesystem-backed static resources)

func (r *RedisStorage) GetCharacter(ctx context.Context, id string) (*npc.Character, error) {
	path := filepath.Join(r.dataDir, "npcs", id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("Character not found", "id", id)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}

	var c npc.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character %s: %w", id, err)
	}

	// Filename is the canonical ID
	c.ID = id
	return &c, nil
}

func (r *RedisStorage) ListCharacters(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dataDir, "npcs"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read npcs directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// TavernRoster returns the characters assigned to a location's tavern,
// ordered by ID. Unknown locations return an empty roster, not an error.
func (r *RedisStorage) TavernRoster(ctx context.Context, mapName, location string) ([]*npc.Character, error) {
	ids, err := r.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}

	var roster []*npc.Character
	for _, id := range ids {
		c, err := r.GetCharacter(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			continue
		}
		if c.Map == mapName && c.Location == location {
			roster = append(roster, c)
		}
	}
	return roster, nil
}

// Game store (Redis-backed)

func goldKey(playerID string) string     { return "player:" + playerID + ":gold" }
func armyKey(playerID string) string     { return "player:" + playerID + ":army" }
func artifactKey(playerID string) string { return "player:" + playerID + ":artifacts" }
func banKey(playerID string) string      { return "player:" + playerID + ":tavern_bans" }

func banMember(mapName, location string) string {
	return mapName + "/" + location
}

func (r *RedisStorage) Gold(ctx context.Context, playerID string) (int, error) {
	val, err := r.client.Get(ctx, goldKey(playerID)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read gold: %w", err)
	}
	return val, nil
}

func (r *RedisStorage) AddGold(ctx context.Context, playerID string, amount int) error {
	if err := r.client.IncrBy(ctx, goldKey(playerID), int64(amount)).Err(); err != nil {
		return fmt.Errorf("failed to add gold: %w", err)
	}
	return nil
}

func (r *RedisStorage) SpendGold(ctx context.Context, playerID string, amount int) error {
	gold, err := r.Gold(ctx, playerID)
	if err != nil {
		return err
	}
	if gold < amount {
		return fmt.Errorf("insufficient gold: have %d, need %d", gold, amount)
	}
	if err := r.client.DecrBy(ctx, goldKey(playerID), int64(amount)).Err(); err != nil {
		return fmt.Errorf("failed to spend gold: %w", err)
	}
	return nil
}

func (r *RedisStorage) RecruitUnit(ctx context.Context, playerID string, unit string, count int) error {
	if err := r.client.HIncrBy(ctx, armyKey(playerID), unit, int64(count)).Err(); err != nil {
		return fmt.Errorf("failed to recruit unit: %w", err)
	}
	return nil
}

func (r *RedisStorage) Army(ctx context.Context, playerID string) (map[string]int, error) {
	vals, err := r.client.HGetAll(ctx, armyKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read army: %w", err)
	}

	army := make(map[string]int, len(vals))
	for unit, count := range vals {
		var n int
		if _, err := fmt.Sscanf(count, "%d", &n); err == nil {
			army[unit] = n
		}
	}
	return army, nil
}

func (r *RedisStorage) AddArtifact(ctx context.Context, playerID string, artifact string) error {
	if err := r.client.SAdd(ctx, artifactKey(playerID), artifact).Err(); err != nil {
		return fmt.Errorf("failed to add artifact: %w", err)
	}
	return nil
}

func (r *RedisStorage) Artifacts(ctx context.Context, playerID string) ([]string, error) {
	artifacts, err := r.client.SMembers(ctx, artifactKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifacts: %w", err)
	}
	sort.Strings(artifacts)
	return artifacts, nil
}

func (r *RedisStorage) BanFromTavern(ctx context.Context, playerID string, mapName, location string) error {
	if err := r.client.SAdd(ctx, banKey(playerID), banMember(mapName, location)).Err(); err != nil {
		return fmt.Errorf("failed to record tavern ban: %w", err)
	}
	r.logger.Info("Player banned from tavern", "player_id", playerID, "map", mapName, "location", location)
	return nil
}

func (r *RedisStorage) IsBannedFrom(ctx context.Context, playerID string, mapName, location string) (bool, error) {
	banned, err := r.client.SIsMember(ctx, banKey(playerID), banMember(mapName, location)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check tavern ban: %w", err)
	}
	return banned, nil
}
