package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tavernkeep/npc-engine/internal/storage"
	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

// ConversationHandler manages conversation sessions: opening one with an
// NPC, fetching the transcript, and closing it.
type ConversationHandler struct {
	storage  storage.Storage
	logger   *slog.Logger
	playerID string
}

func NewConversationHandler(storage storage.Storage, playerID string, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		storage:  storage,
		logger:   logger,
		playerID: playerID,
	}
}

// CreateConversationRequest opens a session with an NPC.
type CreateConversationRequest struct {
	NPCID string `json:"npc_id"`
}

func (h *ConversationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodPost && len(parts) == 2:
		h.create(w, r)
	case r.Method == http.MethodGet && len(parts) == 3:
		h.get(w, r, parts[2])
	case r.Method == http.MethodDelete && len(parts) == 3:
		h.delete(w, r, parts[2])
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func (h *ConversationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'npc_id' field.")
		return
	}
	if req.NPCID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "npc_id is required.")
		return
	}

	c, err := h.storage.GetCharacter(r.Context(), req.NPCID)
	if err != nil {
		h.logger.Error("Failed to load character", "id", req.NPCID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load NPC.")
		return
	}
	if c == nil {
		writeError(w, h.logger, http.StatusNotFound, "NPC not found: "+req.NPCID)
		return
	}

	rel, err := h.storage.LoadRelationship(r.Context(), c.ID, h.playerID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load relationship.")
		return
	}
	if rel == nil {
		rel = relationship.New()
	}
	c.Relationship = rel

	// A banned player gets no conversation, ever.
	if rel.Status == relationship.StatusBanned {
		writeError(w, h.logger, http.StatusForbidden, c.Name()+" wants nothing to do with you.")
		return
	}
	if c.Map != "" && c.Location != "" {
		banned, err := h.storage.IsBannedFrom(r.Context(), h.playerID, c.Map, c.Location)
		if err != nil {
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to check tavern ban.")
			return
		}
		if banned {
			writeError(w, h.logger, http.StatusForbidden, "You have been banned from this tavern.")
			return
		}
	}

	conv := tavern.NewConversation(c)
	if err := h.storage.SaveConversation(r.Context(), conv); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save conversation.")
		return
	}
	if err := h.storage.SaveRelationship(r.Context(), c.ID, h.playerID, rel); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save relationship.")
		return
	}

	greeting := ""
	if len(conv.Transcript) > 0 {
		greeting = conv.Transcript[0].Content
	}
	writeJSON(w, h.logger, http.StatusCreated, chat.Response{
		ConversationID: conv.ID,
		NPCID:          c.ID,
		Message:        greeting,
		Transcript:     conv.Transcript,
	})
}

func (h *ConversationHandler) get(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid conversation ID.")
		return
	}

	conv, err := h.storage.LoadConversation(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load conversation.")
		return
	}
	if conv == nil {
		writeError(w, h.logger, http.StatusNotFound, "Conversation not found.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, conv)
}

func (h *ConversationHandler) delete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid conversation ID.")
		return
	}

	if err := h.storage.DeleteConversation(r.Context(), id); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete conversation.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
