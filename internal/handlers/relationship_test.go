package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
)

func postEvent(t *testing.T, h *RelationshipHandler, npcID, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/v1/relationships/"+npcID+"/events", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRelationshipHandler_GetDefaults(t *testing.T) {
	s := seededStorage(t)
	h := NewRelationshipHandler(s, testPlayerID, testLogger())

	r := httptest.NewRequest(http.MethodGet, "/v1/relationships/greta", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var rel relationship.State
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rel))
	assert.Equal(t, relationship.StatusStranger, rel.Status)
	assert.Equal(t, 10, rel.Trust)
	assert.Equal(t, 20, rel.Respect)
}

func TestRelationshipHandler_QuestCompleted(t *testing.T) {
	s := seededStorage(t)
	h := NewRelationshipHandler(s, testPlayerID, testLogger())

	w := postEvent(t, h, "greta", `{"type": "quest_completed", "description": "Cleared the cellar rats", "gold_reward": 50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rel relationship.State
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rel))
	assert.Equal(t, 30, rel.Trust, "10 starting + 20")
	assert.Equal(t, 35, rel.Respect)
	assert.Equal(t, 20, rel.Affection)
	require.Len(t, rel.MemorableEvents, 1)
	assert.Equal(t, "Cleared the cellar rats", rel.MemorableEvents[0].Description)
	assert.Equal(t, 40, rel.MemorableEvents[0].Impact)

	assert.Equal(t, 50, s.GoldByPlayer[testPlayerID], "quest reward paid out")
}

func TestRelationshipHandler_Betrayal(t *testing.T) {
	s := seededStorage(t)
	h := NewRelationshipHandler(s, testPlayerID, testLogger())

	w := postEvent(t, h, "greta", `{"type": "betrayal"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rel relationship.State
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rel))
	assert.True(t, rel.Vendetta)
	assert.Equal(t, relationship.StatusEnemy, rel.Status, "a vendetta makes an enemy")
	assert.Equal(t, 0, rel.Trust)
	require.Len(t, rel.MemorableEvents, 1)
	assert.Equal(t, "A betrayal", rel.MemorableEvents[0].Description, "default description used")
}

func TestRelationshipHandler_Gift(t *testing.T) {
	s := seededStorage(t)
	h := NewRelationshipHandler(s, testPlayerID, testLogger())

	w := postEvent(t, h, "greta", `{"type": "gift"}`)
	require.Equal(t, http.StatusOK, w.Code)

	rel := s.Relationships["greta:"+testPlayerID]
	require.NotNil(t, rel)
	assert.Equal(t, 20, rel.Affection)
}

func TestRelationshipHandler_UnknownEventType(t *testing.T) {
	s := seededStorage(t)
	h := NewRelationshipHandler(s, testPlayerID, testLogger())

	w := postEvent(t, h, "greta", `{"type": "birthday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelationshipHandler_EventUnknownNPC(t *testing.T) {
	s := seededStorage(t)
	h := NewRelationshipHandler(s, testPlayerID, testLogger())

	w := postEvent(t, h, "nobody", `{"type": "gift"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
