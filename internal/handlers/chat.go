package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tavernkeep/npc-engine/internal/storage"
	"github.com/tavernkeep/npc-engine/pkg/chat"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

// ChatHandler runs one conversation turn per request: it loads the
// conversation and character, delegates the turn to the tavern engine, and
// persists what changed.
type ChatHandler struct {
	engine   *tavern.Engine
	storage  storage.Storage
	logger   *slog.Logger
	playerID string
}

func NewChatHandler(engine *tavern.Engine, storage storage.Storage, playerID string, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		engine:   engine,
		storage:  storage,
		logger:   logger,
		playerID: playerID,
	}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for chat endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'conversation_id' and 'message' fields.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	conv, err := h.storage.LoadConversation(ctx, req.ConversationID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load conversation.")
		return
	}
	if conv == nil {
		writeError(w, h.logger, http.StatusNotFound, "Conversation not found.")
		return
	}

	c, err := h.storage.GetCharacter(ctx, conv.NPCID)
	if err != nil || c == nil {
		h.logger.Error("Failed to load character for conversation",
			"npc_id", conv.NPCID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load NPC.")
		return
	}

	rel, err := h.storage.LoadRelationship(ctx, c.ID, h.playerID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load relationship.")
		return
	}
	if rel == nil {
		rel = relationship.New()
	}
	c.Relationship = rel

	result, err := h.engine.Turn(ctx, conv, c, req.Message)
	if err != nil {
		if errors.Is(err, tavern.ErrConversationClosed) {
			writeError(w, h.logger, http.StatusConflict, "This conversation has ended.")
			return
		}
		h.logger.Error("Turn failed", "conversation_id", conv.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to process message.")
		return
	}

	if err := h.storage.SaveConversation(ctx, conv); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save conversation.")
		return
	}
	if err := h.storage.SaveRelationship(ctx, c.ID, h.playerID, rel); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save relationship.")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, chat.Response{
		ConversationID: conv.ID,
		NPCID:          c.ID,
		Message:        result.Reply,
		Transcript:     conv.Transcript,
		Ejected:        result.Ejection,
	})
}
