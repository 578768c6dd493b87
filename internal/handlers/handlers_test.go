package handlers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/tavernkeep/npc-engine/internal/storage"
	"github.com/tavernkeep/npc-engine/pkg/npc"
)

const testPlayerID = "player"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testKeeper(t *testing.T) *npc.Character {
	t.Helper()
	return &npc.Character{
		ID:       "greta",
		Map:      "eastmarch",
		Location: "gilded_boar",
		Background: npc.Background{
			Name:       "Greta",
			Occupation: "tavern keeper",
		},
		Speech: npc.SpeechPatterns{
			Greetings: []string{"What'll it be, stranger?"},
		},
		CanEject: true,
	}
}

func seededStorage(t *testing.T) *storage.MockStorage {
	t.Helper()
	s := storage.NewMockStorage()
	s.Characters["greta"] = testKeeper(t)
	return s
}
