package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tavernkeep/npc-engine/internal/storage"
	"github.com/tavernkeep/npc-engine/pkg/relationship"
)

// Scripted game events that adjust a relationship outside conversation.
const (
	EventQuestCompleted = "quest_completed"
	EventGift           = "gift"
	EventRescue         = "rescue"
	EventBetrayal       = "betrayal"
)

// RelationshipHandler exposes relationship state and applies explicit game
// events (quest completion, gifts, betrayals) with scripted scalar rewards.
type RelationshipHandler struct {
	storage  storage.Storage
	logger   *slog.Logger
	playerID string
}

func NewRelationshipHandler(storage storage.Storage, playerID string, logger *slog.Logger) *RelationshipHandler {
	return &RelationshipHandler{
		storage:  storage,
		logger:   logger,
		playerID: playerID,
	}
}

// GameEventRequest records one scripted event against an NPC relationship.
type GameEventRequest struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	GoldReward  int    `json:"gold_reward,omitempty"` // paid out on quest_completed
}

func (h *RelationshipHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	// Routes: v1/relationships/{npcID}, v1/relationships/{npcID}/events
	switch {
	case r.Method == http.MethodGet && len(parts) == 3:
		h.get(w, r, parts[2])
	case r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "events":
		h.applyEvent(w, r, parts[2])
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func (h *RelationshipHandler) get(w http.ResponseWriter, r *http.Request, npcID string) {
	rel, err := h.storage.LoadRelationship(r.Context(), npcID, h.playerID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load relationship.")
		return
	}
	if rel == nil {
		// First contact hasn't happened yet; report the defaults.
		rel = relationship.New()
	}
	writeJSON(w, h.logger, http.StatusOK, rel)
}

func (h *RelationshipHandler) applyEvent(w http.ResponseWriter, r *http.Request, npcID string) {
	var req GameEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'type' field.")
		return
	}

	c, err := h.storage.GetCharacter(r.Context(), npcID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load NPC.")
		return
	}
	if c == nil {
		writeError(w, h.logger, http.StatusNotFound, "NPC not found: "+npcID)
		return
	}

	rel, err := h.storage.LoadRelationship(r.Context(), npcID, h.playerID)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load relationship.")
		return
	}
	if rel == nil {
		rel = relationship.New()
	}

	switch req.Type {
	case EventQuestCompleted:
		rel.ApplyDelta(20, 15, 10, 0)
		rel.AddEvent(eventDescription(req.Description, "Completed a quest"), 40)
		if req.GoldReward > 0 {
			if err := h.storage.AddGold(r.Context(), h.playerID, req.GoldReward); err != nil {
				writeError(w, h.logger, http.StatusInternalServerError, "Failed to pay quest reward.")
				return
			}
		}
	case EventGift:
		rel.ApplyDelta(5, 0, 10, 0)
		rel.AddEvent(eventDescription(req.Description, "Gave a gift"), 15)
	case EventRescue:
		rel.ApplyDelta(30, 20, 15, 0)
		rel.AddEvent(eventDescription(req.Description, "Came to the rescue"), 50)
	case EventBetrayal:
		rel.ApplyDelta(-40, -20, -30, 10)
		rel.MarkVendetta()
		rel.AddEvent(eventDescription(req.Description, "A betrayal"), -60)
	default:
		writeError(w, h.logger, http.StatusBadRequest, "Unknown event type: "+req.Type)
		return
	}

	if err := h.storage.SaveRelationship(r.Context(), npcID, h.playerID, rel); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save relationship.")
		return
	}

	h.logger.Info("Game event applied",
		"npc_id", npcID,
		"event", req.Type,
		"status", rel.Status)
	writeJSON(w, h.logger, http.StatusOK, rel)
}

func eventDescription(provided, fallback string) string {
	if provided != "" {
		return provided
	}
	return fallback
}
