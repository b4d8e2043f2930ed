// File: internal/dtos/conversation.go
package dtos

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/services/chat"
)

// CreateConversationRequest is the payload for POST /conversations.
type CreateConversationRequest struct {
	ProviderID string  `json:"providerId"`
	Model      string  `json:"model"`
	Title      *string `json:"title,omitempty"`
}

func (r *CreateConversationRequest) Validate() error {
	if _, err := uuid.Parse(r.ProviderID); err != nil {
		return domain.NewValidationError("create_conversation", "Provider ID must be a valid UUID")
	}
	if strings.TrimSpace(r.Model) == "" {
		return domain.NewValidationError("create_conversation", "Model is required")
	}
	return nil
}

// Input assumes Validate has passed.
func (r *CreateConversationRequest) Input() chat.CreateInput {
	return chat.CreateInput{ProviderID: uuid.MustParse(r.ProviderID), Model: r.Model, Title: r.Title}
}

// SendMessageRequest is the payload for POST /conversations/{id}/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return domain.NewValidationError("send_message", "Message content is required")
	}
	return nil
}
