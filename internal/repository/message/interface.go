// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
)

// MessageRepository appends and reads messages. Messages are never updated.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// FindByConversationID returns every message, newest first.
	FindByConversationID(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error)
	// FindByConversationIDWithPagination returns one page, newest first.
	FindByConversationIDWithPagination(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]domain.Message, error)
}
