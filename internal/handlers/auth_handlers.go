// File: internal/handlers/auth_handlers.go
package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/dtos"
	"github.com/iyunix/go-mindster/internal/services/user_services"
)

// AuthService is what the auth routes need from the identity service.
type AuthService interface {
	Register(ctx context.Context, email, password string, name *string) (*user_services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*user_services.AuthResult, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.UserView, error)
}

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	service AuthService
	logger  Logger
}

func NewAuthHandler(service AuthService, logger Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}

	res, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	user, err := h.service.CurrentUser(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout is stateless; the client discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Logged out successfully"})
}
