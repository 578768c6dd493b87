package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tavernkeep/npc-engine/internal/storage"
	"github.com/tavernkeep/npc-engine/pkg/npc"
)

// CharacterHandler serves the NPC registry: individual characters and
// tavern rosters.
type CharacterHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewCharacterHandler(storage storage.Storage, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *CharacterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	// Routes: v1/npcs, v1/npcs/{id}, v1/taverns/{map}/{location}
	switch {
	case len(parts) == 2 && parts[1] == "npcs":
		h.listNPCs(w, r)
	case len(parts) == 3 && parts[1] == "npcs":
		h.getNPC(w, r, parts[2])
	case len(parts) == 4 && parts[1] == "taverns":
		h.tavernRoster(w, r, parts[2], parts[3])
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found.")
	}
}

func (h *CharacterHandler) listNPCs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.storage.ListCharacters(r.Context())
	if err != nil {
		h.logger.Error("Failed to list characters", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list NPCs.")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string][]string{"npcs": ids})
}

func (h *CharacterHandler) getNPC(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.storage.GetCharacter(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load character", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load NPC.")
		return
	}
	if c == nil {
		writeError(w, h.logger, http.StatusNotFound, "NPC not found: "+id)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, c)
}

func (h *CharacterHandler) tavernRoster(w http.ResponseWriter, r *http.Request, mapName, location string) {
	roster, err := h.storage.TavernRoster(r.Context(), mapName, location)
	if err != nil {
		h.logger.Error("Failed to load tavern roster", "map", mapName, "location", location, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load tavern roster.")
		return
	}
	// Unknown locations yield an empty roster, not an error.
	if roster == nil {
		roster = make([]*npc.Character, 0)
	}
	writeJSON(w, h.logger, http.StatusOK, roster)
}
