package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

func testRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis, string) {
	t.Helper()
	mr := miniredis.RunT(t)
	dataDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedisStorage(mr.Addr(), dataDir, logger), mr, dataDir
}

func writeCharacterFile(t *testing.T, dataDir, id, contents string) {
	t.Helper()
	dir := filepath.Join(dataDir, "npcs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(contents), 0o644))
}

func TestConversationRoundTrip(t *testing.T) {
	s, _, _ := testRedisStorage(t)
	ctx := context.Background()

	c := &npc.Character{
		ID:         "greta",
		Background: npc.Background{Name: "Greta", Occupation: "tavern keeper"},
		Speech:     npc.SpeechPatterns{Greetings: []string{"What'll it be?"}},
	}
	conv := tavern.NewConversation(c)

	require.NoError(t, s.SaveConversation(ctx, conv))

	loaded, err := s.LoadConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, conv.ID, loaded.ID)
	assert.Equal(t, "greta", loaded.NPCID)
	assert.Len(t, loaded.Transcript, 1)

	require.NoError(t, s.DeleteConversation(ctx, conv.ID))
	gone, err := s.LoadConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "deleted conversation should load as nil")
}

func TestLoadConversation_NotFound(t *testing.T) {
	s, _, _ := testRedisStorage(t)

	conv, err := s.LoadConversation(context.Background(), uuid.New())
	require.NoError(t, err, "absent conversation is not an error")
	assert.Nil(t, conv)
}

func TestRelationshipRoundTrip(t *testing.T) {
	s, _, _ := testRedisStorage(t)
	ctx := context.Background()

	rel := relationship.New()
	rel.ApplyDelta(40, 30, 35, 0)
	rel.AddEvent("Bought a round", 20)

	require.NoError(t, s.SaveRelationship(ctx, "greta", "player", rel))

	loaded, err := s.LoadRelationship(ctx, "greta", "player")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rel.Trust, loaded.Trust)
	assert.Equal(t, rel.Status, loaded.Status)
	assert.Len(t, loaded.MemorableEvents, 1)

	// Relationships are keyed per (NPC, player) pair.
	other, err := s.LoadRelationship(ctx, "greta", "someone_else")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestGetCharacter(t *testing.T) {
	s, _, dataDir := testRedisStorage(t)
	writeCharacterFile(t, dataDir, "greta", `{
		"background": {"name": "Greta", "occupation": "tavern keeper"},
		"can_eject": true,
		"map": "eastmarch",
		"location": "gilded_boar"
	}`)

	c, err := s.GetCharacter(context.Background(), "greta")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "greta", c.ID, "filename is the canonical ID")
	assert.Equal(t, "Greta", c.Background.Name)
	assert.True(t, c.CanEject)
}

func TestGetCharacter_NotFound(t *testing.T) {
	s, _, _ := testRedisStorage(t)

	c, err := s.GetCharacter(context.Background(), "nobody")
	require.NoError(t, err, "unknown character ID is not an error")
	assert.Nil(t, c)
}

func TestTavernRoster(t *testing.T) {
	s, _, dataDir := testRedisStorage(t)
	writeCharacterFile(t, dataDir, "greta", `{"background": {"name": "Greta"}, "map": "eastmarch", "location": "gilded_boar"}`)
	writeCharacterFile(t, dataDir, "bram", `{"background": {"name": "Bram"}, "map": "eastmarch", "location": "gilded_boar"}`)
	writeCharacterFile(t, dataDir, "elsewhere", `{"background": {"name": "Oswin"}, "map": "westvale", "location": "crooked_crow"}`)

	roster, err := s.TavernRoster(context.Background(), "eastmarch", "gilded_boar")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	// Ordered by ID.
	assert.Equal(t, "bram", roster[0].ID)
	assert.Equal(t, "greta", roster[1].ID)

	empty, err := s.TavernRoster(context.Background(), "nowhere", "nothing")
	require.NoError(t, err, "unknown location yields an empty roster, not an error")
	assert.Empty(t, empty)
}

func TestGold(t *testing.T) {
	s, _, _ := testRedisStorage(t)
	ctx := context.Background()

	gold, err := s.Gold(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, 0, gold, "fresh player starts with no gold recorded")

	require.NoError(t, s.AddGold(ctx, "player", 100))
	require.NoError(t, s.SpendGold(ctx, "player", 30))

	gold, err = s.Gold(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, 70, gold)

	err = s.SpendGold(ctx, "player", 1000)
	assert.Error(t, err, "overspending must fail")
}

func TestArmyAndArtifacts(t *testing.T) {
	s, _, _ := testRedisStorage(t)
	ctx := context.Background()

	require.NoError(t, s.RecruitUnit(ctx, "player", "pikeman", 5))
	require.NoError(t, s.RecruitUnit(ctx, "player", "pikeman", 3))
	require.NoError(t, s.RecruitUnit(ctx, "player", "archer", 2))

	army, err := s.Army(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, 8, army["pikeman"])
	assert.Equal(t, 2, army["archer"])

	require.NoError(t, s.AddArtifact(ctx, "player", "ring_of_keys"))
	require.NoError(t, s.AddArtifact(ctx, "player", "ring_of_keys")) // idempotent
	require.NoError(t, s.AddArtifact(ctx, "player", "boar_tusk"))

	artifacts, err := s.Artifacts(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, []string{"boar_tusk", "ring_of_keys"}, artifacts)
}

func TestTavernBans(t *testing.T) {
	s, _, _ := testRedisStorage(t)
	ctx := context.Background()

	banned, err := s.IsBannedFrom(ctx, "player", "eastmarch", "gilded_boar")
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, s.BanFromTavern(ctx, "player", "eastmarch", "gilded_boar"))

	banned, err = s.IsBannedFrom(ctx, "player", "eastmarch", "gilded_boar")
	require.NoError(t, err)
	assert.True(t, banned)

	elsewhere, err := s.IsBannedFrom(ctx, "player", "westvale", "crooked_crow")
	require.NoError(t, err)
	assert.False(t, elsewhere, "bans are scoped to one tavern")
}
