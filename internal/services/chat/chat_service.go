// File: internal/services/chat/chat_service.go
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository/conversation"
	"github.com/iyunix/go-mindster/internal/repository/message"
	"github.com/iyunix/go-mindster/internal/services/ai"
)

// Service owns conversations and the message-send pipeline. It is the only
// component that calls a provider's completion endpoint.
type Service struct {
	conversations conversation.ConversationRepository
	messages      message.MessageRepository
	providers     ProviderSource
	completer     Completer
	config        *Config
	logger        Logger
	now           func() time.Time
}

func NewService(
	conversations conversation.ConversationRepository,
	messages message.MessageRepository,
	providers ProviderSource,
	completer Completer,
	config *Config,
	logger Logger,
) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		conversations: conversations,
		messages:      messages,
		providers:     providers,
		completer:     completer,
		config:        config,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// WithClock replaces the time source used for timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ListConversations(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = s.config.ConversationPageSize
	}
	list, err := s.conversations.FindByUserIDWithPagination(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Conversation{}
	}
	return list, nil
}

func (s *Service) CreateConversation(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*domain.Conversation, error) {
	model := strings.TrimSpace(in.Model)
	if model == "" {
		return nil, domain.NewValidationError("create_conversation", "model is required")
	}
	if in.ProviderID == uuid.Nil {
		return nil, domain.NewValidationError("create_conversation", "providerId is required")
	}
	if _, err := s.providers.GetByID(ctx, ownerID, in.ProviderID); err != nil {
		return nil, err
	}

	var title *string
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		t := strings.TrimSpace(*in.Title)
		title = &t
	}

	now := s.now()
	providerID := in.ProviderID
	c := &domain.Conversation{
		UserID:     ownerID,
		ProviderID: &providerID,
		Model:      model,
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.conversations.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("conversation created", "conversation_id", c.ID, "user_id", ownerID, "model", model)
	return c, nil
}

// GetConversation returns the conversation with all of its messages, newest first.
func (s *Service) GetConversation(ctx context.Context, ownerID, id uuid.UUID) (*domain.ConversationWithMessages, error) {
	c, err := s.findOwned(ctx, ownerID, id, "get_conversation")
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.FindByConversationID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return &domain.ConversationWithMessages{Conversation: *c, Messages: msgs}, nil
}

func (s *Service) DeleteConversation(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted, err := s.conversations.Delete(ctx, id, ownerID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("conversation deleted", "conversation_id", id, "user_id", ownerID)
	}
	return deleted, nil
}

// ListMessages returns one page, newest first. A conversation the caller does not
// own yields an empty page, not an error.
func (s *Service) ListMessages(ctx context.Context, ownerID, conversationID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	if _, err := s.findOwned(ctx, ownerID, conversationID, "list_messages"); err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return []domain.Message{}, nil
		}
		return nil, err
	}
	if limit <= 0 {
		limit = s.config.MessagePageSize
	}
	msgs, err := s.messages.FindByConversationIDWithPagination(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}

// SendMessage stores the user's message, asks the provider for a reply and stores it.
// The user message is persisted before the outbound call and is kept when that call
// fails, and from that point on the caller's cancellation is ignored. Concurrent
// sends on one conversation are not serialized; the conversation row is
// last-write-wins.
func (s *Service) SendMessage(ctx context.Context, ownerID, conversationID uuid.UUID, content string) (*SendResult, error) {
	const op = "send_message"
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError(op, "message content is required")
	}

	conv, err := s.findOwned(ctx, ownerID, conversationID, op)
	if err != nil {
		return nil, err
	}
	if conv.ProviderID == nil {
		return nil, domain.Wrap(domain.ErrNoProvider, op, nil)
	}

	cred, err := s.providers.GetWithSecret(ctx, ownerID, *conv.ProviderID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleUser,
		Content:        content,
		CreatedAt:      s.now(),
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	// Once the user message is stored the exchange runs to completion even if the
	// caller goes away.
	ctx = context.WithoutCancel(ctx)

	stored, err := s.messages.FindByConversationID(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	history := make([]ai.ChatMessage, len(stored))
	for i, m := range stored {
		history[len(stored)-1-i] = ai.ChatMessage{Role: m.Role, Content: m.Content}
	}

	s.logger.Info("sending message to provider",
		"conversation_id", conv.ID,
		"provider_id", cred.Provider.ID,
		"model", conv.Model,
		"history_length", len(history))

	reply, err := s.completer.Complete(ctx, ai.Credential{BaseURL: cred.Provider.BaseURL, APIKey: cred.APIKey}, conv.Model, history)
	if err != nil {
		s.logger.Warn("provider call failed, user message kept",
			"conversation_id", conv.ID,
			"message_id", userMsg.ID,
			"error", err)
		return nil, err
	}

	assistantMsg := &domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        reply,
		CreatedAt:      s.now(),
	}
	if err := s.messages.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	var title *string
	if conv.Title == nil {
		t := deriveTitle(content, s.config.TitleMaxRunes)
		title = &t
	}
	if err := s.conversations.TouchUpdatedAt(ctx, conv.ID, s.now(), title); err != nil {
		if errors.Is(err, conversation.ErrConversationNotFound) {
			return nil, domain.Wrap(domain.ErrConversationNotFound, op, nil)
		}
		return nil, err
	}

	return &SendResult{UserMessage: *userMsg, AssistantMessage: *assistantMsg}, nil
}

func (s *Service) findOwned(ctx context.Context, ownerID, id uuid.UUID, op string) (*domain.Conversation, error) {
	c, err := s.conversations.FindByIDForUser(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, conversation.ErrConversationNotFound) {
			return nil, domain.Wrap(domain.ErrConversationNotFound, op, nil)
		}
		return nil, err
	}
	return c, nil
}
