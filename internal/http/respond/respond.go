// Package respond holds the JSON reply helpers shared by the HTTP handlers.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iconnecthq/iconnect/internal/fault"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps the error's fault kind to an HTTP status and writes the
// message. Internal errors are masked; the cause is logged instead.
func Error(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)

	msg := err.Error()
	if kind == fault.Internal {
		slog.Error("request failed", "error", err)

		msg = "internal error"
	}

	JSON(w, fault.HTTPStatus(err), errorBody{Error: msg, Kind: kind.String()})
}
