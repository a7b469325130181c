package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jacentio/songbook/songs"
)

// Handlers holds the HTTP handlers for the song API.
type Handlers struct {
	service *songs.Service
	logger  *slog.Logger
	version string
}

// NewHandlers creates the handler set.
func NewHandlers(service *songs.Service, logger *slog.Logger, version string) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{service: service, logger: logger, version: version}
}

// Root handles GET /. It reports liveness only and never touches the
// store.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "songbook API",
		"status":  "healthy",
		"version": h.version,
	})
}

// Health handles GET /health, the readiness probe. Reports 503 when the
// store is unreachable.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ready(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListSongs handles GET /songs. An empty table yields [], not null.
func (h *Handlers) ListSongs(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []songs.Song{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateSong handles POST /songs.
func (h *Handlers) CreateSong(w http.ResponseWriter, r *http.Request) {
	var params songs.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:  "invalid request body",
			Detail: err.Error(),
		})
		return
	}

	song, err := h.service.Create(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

// GetSong handles GET /songs/{id}.
func (h *Handlers) GetSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	song, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// UpdateSong handles PUT /songs/{id}. The body is a partial update;
// absent fields keep their stored value.
func (h *Handlers) UpdateSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch songs.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:  "invalid request body",
			Detail: err.Error(),
		})
		return
	}

	song, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// DeleteSong handles DELETE /songs/{id} and returns the removed record.
func (h *Handlers) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	song, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}
