package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/core"
)

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Messages  []string `json:"messages,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// respondServiceError maps a core error kind to an HTTP status and writes the
// structured failure, including the full violation list for validation errors.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *core.Error
	if !errors.As(err, &ce) {
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch ce.Kind {
	case core.KindValidation, core.KindInvalidArgument, core.KindReferenceNotFound:
		status = http.StatusBadRequest
	case core.KindNotFound:
		status = http.StatusNotFound
	case core.KindDuplicateKey:
		status = http.StatusConflict
	case core.KindStorage:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     ce.Error(),
		Code:      string(ce.Kind),
		RequestID: requestIDFromContext(r.Context()),
	}
	if len(ce.Messages) > 1 {
		resp.Messages = ce.Messages
	}
	_ = json.NewEncoder(w).Encode(resp)
}
