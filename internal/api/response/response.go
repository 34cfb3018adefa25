// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success int               `json:"success"`
	Data    any               `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
	Extra   map[string]any    `json:"extra"`
}

// Message is the data payload of endpoints that only confirm an action.
type Message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// OK writes a successful envelope. A nil data becomes an empty object.
func OK(w http.ResponseWriter, data any) {
	if data == nil {
		data = struct{}{}
	}
	JSON(w, http.StatusOK, Envelope{
		Success: 1,
		Data:    data,
		Errors:  map[string]string{},
		Extra:   map[string]any{},
	})
}

// Error writes a failure envelope. Anything that is not an *APIError is
// logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		apiErr = ErrInternal
	}

	fields := apiErr.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	JSON(w, apiErr.StatusCode, Envelope{
		Success: 0,
		Data:    struct{}{},
		Error:   apiErr.Message,
		Errors:  fields,
		Extra:   map[string]any{},
	})
}
