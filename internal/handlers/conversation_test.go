package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

func TestConversationHandler_Create(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	body := bytes.NewReader([]byte(`{"npc_id": "greta"}`))
	r := httptest.NewRequest(http.MethodPost, "/v1/conversations", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp chat.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "greta", resp.NPCID)
	assert.Equal(t, "What'll it be, stranger?", resp.Message, "greeting seeds the transcript")
	require.Len(t, resp.Transcript, 1)

	saved := s.Conversations[resp.ConversationID]
	require.NotNil(t, saved, "conversation persisted")
	assert.Equal(t, "greta", saved.NPCID)
	assert.NotNil(t, s.Relationships["greta:"+testPlayerID], "first contact persists a relationship")
}

func TestConversationHandler_CreateUnknownNPC(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	body := bytes.NewReader([]byte(`{"npc_id": "nobody"}`))
	r := httptest.NewRequest(http.MethodPost, "/v1/conversations", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConversationHandler_CreateMissingNPCID(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	body := bytes.NewReader([]byte(`{}`))
	r := httptest.NewRequest(http.MethodPost, "/v1/conversations", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversationHandler_CreateBannedStatus(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	rel := relationship.New()
	rel.Ban()
	s.Relationships["greta:"+testPlayerID] = rel

	body := bytes.NewReader([]byte(`{"npc_id": "greta"}`))
	r := httptest.NewRequest(http.MethodPost, "/v1/conversations", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusForbidden, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Greta wants nothing to do with you.", resp.Error)
}

func TestConversationHandler_CreateBannedFromTavern(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	require.NoError(t, s.BanFromTavern(context.Background(), testPlayerID, "eastmarch", "gilded_boar"))

	body := bytes.NewReader([]byte(`{"npc_id": "greta"}`))
	r := httptest.NewRequest(http.MethodPost, "/v1/conversations", body)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestConversationHandler_Get(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	conv := tavern.NewConversation(s.Characters["greta"])
	s.Conversations[conv.ID] = conv

	r := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conv.ID.String(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var loaded tavern.Conversation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loaded))
	assert.Equal(t, conv.ID, loaded.ID)
	assert.Len(t, loaded.Transcript, 1)
}

func TestConversationHandler_GetInvalidID(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	r := httptest.NewRequest(http.MethodGet, "/v1/conversations/not-a-uuid", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversationHandler_Delete(t *testing.T) {
	s := seededStorage(t)
	h := NewConversationHandler(s, testPlayerID, testLogger())

	conv := tavern.NewConversation(s.Characters["greta"])
	s.Conversations[conv.ID] = conv

	r := httptest.NewRequest(http.MethodDelete, "/v1/conversations/"+conv.ID.String(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, s.Conversations[conv.ID])
}
