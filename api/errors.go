package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jacentio/songbook/songs"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string                 `json:"error"`
	Detail string                 `json:"detail,omitempty"`
	Fields []songs.FieldViolation `json:"fields,omitempty"`
}

// writeError maps a service error onto a status code and JSON body.
// Expected outcomes (validation, not found) surface with detail;
// everything else is logged in full and returned as a generic 500 so
// store internals never leak to clients.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *songs.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:  "validation failed",
			Fields: verr.Violations,
		})
	case errors.Is(err, songs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{
			Error:  "song not found",
			Detail: fmt.Sprintf("no song with id %q", mux.Vars(r)["id"]),
		})
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(v)
}
