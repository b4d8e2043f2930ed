// File: internal/handlers/provider_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/dtos"
	"github.com/iyunix/go-mindster/internal/services/provider_services"
)

// ProviderService is the outward-safe part of the provider registry.
// It deliberately has no method that returns a decrypted key.
type ProviderService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.ProviderView, error)
	Create(ctx context.Context, ownerID uuid.UUID, in provider_services.CreateInput) (*domain.ProviderView, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ProviderView, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in provider_services.UpdateInput) (*domain.ProviderView, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	TestConnection(ctx context.Context, ownerID, id uuid.UUID) (*provider_services.ConnectionResult, error)
}

type ProviderHandler struct {
	service ProviderService
	logger  Logger
}

func NewProviderHandler(service ProviderService, logger Logger) *ProviderHandler {
	return &ProviderHandler{service: service, logger: logger}
}

func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	providers, err := h.service.List(r.Context(), me.UserID)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	var req dtos.CreateProviderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	p, err := h.service.Create(r.Context(), me.UserID, req.Input())
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	p, err := h.service.GetByID(r.Context(), me.UserID, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	var req dtos.UpdateProviderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	p, err := h.service.Update(r.Context(), me.UserID, id, req.Input())
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	deleted, err := h.service.Delete(r.Context(), me.UserID, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	if !deleted {
		writeServiceError(w, h.logger, r, domain.Wrap(domain.ErrProviderNotFound, "delete_provider", nil))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProviderHandler) Test(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	res, err := h.service.TestConnection(r.Context(), me.UserID, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
