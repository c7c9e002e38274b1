package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters a batch-level error
//  2. Calls respondError(w, r, err)
//  3. The HTTP status is derived from the error kind
//  4. Error is mapped via core.MapError to get a user-friendly message
//  5. Technical error is logged with the request ID; the client gets JSON

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/JonMunkholm/teistermask/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error server-side and writes the mapped
// user message as JSON.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// errorStatus picks the HTTP status for a batch-level error.
func errorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	var dateErr *core.DateError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrMalformedBatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrUnknownFormat),
		errors.Is(err, core.ErrInvalidParameter),
		errors.As(err, &dateErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
