// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iyunix/go-mindster/internal/auth"
	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/middleware"
	"github.com/iyunix/go-mindster/internal/repository"
)

const maxBodyBytes = 1 << 20

// Logger interface for handlers
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type validator interface {
	Validate() error
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError translates an error from the service layer into a response.
// Anything that is not a domain error is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, logger Logger, r *http.Request, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		logger.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	body := map[string]string{"error": de.Message, "code": de.Code}
	switch de.Type {
	case domain.ErrTypeValidation:
		writeJSON(w, http.StatusBadRequest, body)
	case domain.ErrTypeAuth:
		writeJSON(w, http.StatusUnauthorized, body)
	case domain.ErrTypeNotFound:
		writeJSON(w, http.StatusNotFound, body)
	case domain.ErrTypeUpstream:
		logger.Warn("upstream provider error", "path", r.URL.Path, "status", de.Status, "error", err)
		writeJSON(w, http.StatusInternalServerError, body)
	default:
		logger.Error("internal error", "method", r.Method, "path", r.URL.Path, "type", de.Type, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error", "code": de.Code})
	}
}

// decodeJSON reads a JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst validator) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("decode_body", "request body is required")
		}
		return domain.NewValidationError("decode_body", "invalid JSON body")
	}
	return dst.Validate()
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, domain.NewValidationError("path", "id must be a valid UUID")
	}
	return id, nil
}

// pagination reads limit and offset. Zero limit means the service default.
func pagination(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > repository.MaxPageSize {
			return 0, 0, domain.NewValidationError("pagination", "limit must be between 1 and 100")
		}
	}
	if v := q.Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, domain.NewValidationError("pagination", "offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// caller returns the authenticated identity. Routes without AuthMiddleware never call it.
func caller(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, "User not authenticated", http.StatusUnauthorized)
	}
	return id, ok
}
