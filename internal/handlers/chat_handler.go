// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/dtos"
	"github.com/iyunix/go-mindster/internal/services/chat"
)

// ConversationService is what the conversation routes need from the orchestrator.
type ConversationService interface {
	ListConversations(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, ownerID uuid.UUID, in chat.CreateInput) (*domain.Conversation, error)
	GetConversation(ctx context.Context, ownerID, id uuid.UUID) (*domain.ConversationWithMessages, error)
	DeleteConversation(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	ListMessages(ctx context.Context, ownerID, conversationID uuid.UUID, limit, offset int) ([]domain.Message, error)
	SendMessage(ctx context.Context, ownerID, conversationID uuid.UUID, content string) (*chat.SendResult, error)
	ExportConversation(ctx context.Context, ownerID, id uuid.UUID) ([]byte, error)
}

type ChatHandler struct {
	service ConversationService
	logger  Logger
}

func NewChatHandler(service ConversationService, logger Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: logger}
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	limit, offset, err := pagination(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	list, err := h.service.ListConversations(r.Context(), me.UserID, limit, offset)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	var req dtos.CreateConversationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	c, err := h.service.CreateConversation(r.Context(), me.UserID, req.Input())
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	c, err := h.service.GetConversation(r.Context(), me.UserID, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	deleted, err := h.service.DeleteConversation(r.Context(), me.UserID, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	if !deleted {
		writeServiceError(w, h.logger, r, domain.Wrap(domain.ErrConversationNotFound, "delete_conversation", nil))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	limit, offset, err := pagination(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	msgs, err := h.service.ListMessages(r.Context(), me.UserID, id, limit, offset)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	var req dtos.SendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	res, err := h.service.SendMessage(r.Context(), me.UserID, id, req.Content)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ChatHandler) ExportConversation(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	doc, err := h.service.ExportConversation(r.Context(), me.UserID, id)
	if err != nil {
		writeServiceError(w, h.logger, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="conversation-`+id.String()+`.html"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
