package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away; nothing to do about it.
	json.NewEncoder(w).Encode(v)
}

// writeErrorBody writes an ErrorResponse.
func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest rejects a request before it reaches the catalog
// (malformed body, unparseable path or query parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusBadRequest, "bad_request", message)
}

// writeError maps a domain error to its HTTP status. The caller supplies the
// not-found message (e.g. "customer not found") because the handler is the
// layer that knows what was being looked up.
//
// A persistence error that is also a not-found is a missing snapshot (404);
// any other persistence error is the storage backend failing (502).
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrPersistence) && errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrPersistence):
		slog.WarnContext(r.Context(), "snapshot storage failed", "error", err)
		writeErrorBody(w, http.StatusBadGateway, "persistence_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, "conflict", unwrapMessage(err))
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "catalog: validation error: days must be a positive number" → "days must be a positive number"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrNotFound,
		domain.ErrPersistence,
	} {
		prefix := sentinel.Error() + ": "
		if i := strings.LastIndex(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
			return msg[i+len(prefix):]
		}
	}
	return msg
}

// decodeBody decodes the JSON request body into v. It writes the error
// response itself and returns false when the body is missing or malformed,
// or 413 when it is larger than the configured limit.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, false)
}

// decodeOptionalBody is decodeBody for routes whose body may be empty.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, true)
}

func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body is too large")
		return false
	}
	badRequest(w, "request body must be a JSON object")
	return false
}
