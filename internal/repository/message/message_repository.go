// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository"
)

type gormMessageRepository struct {
	db     *gorm.DB
	logger repository.Logger
}

func NewMessageRepository(db *gorm.DB, logger repository.Logger) MessageRepository {
	return &gormMessageRepository{db: db, logger: logger}
}

func (r *gormMessageRepository) Create(ctx context.Context, m *domain.Message) error {
	if err := validateMessage(m); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("database error creating message", "conversation_id", m.ConversationID, "role", m.Role, "error", err)
		return errors.New("database error creating message")
	}
	return nil
}

func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.newestFirst(ctx, conversationID).Find(&messages).Error
	if err != nil {
		r.logger.Error("database error finding messages", "conversation_id", conversationID, "error", err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) FindByConversationIDWithPagination(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	limit, offset = repository.ClampPage(limit, offset, 50)

	var messages []domain.Message
	err := r.newestFirst(ctx, conversationID).Limit(limit).Offset(offset).Find(&messages).Error
	if err != nil {
		r.logger.Error("database error in paginated message query", "conversation_id", conversationID, "error", err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) newestFirst(ctx context.Context, conversationID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC")
}

func validateMessage(m *domain.Message) error {
	if m == nil {
		return errors.New("message cannot be nil")
	}
	if m.ConversationID == uuid.Nil {
		return errors.New("conversation ID is required")
	}
	if !m.Role.Valid() {
		return fmt.Errorf("invalid role %q", m.Role)
	}
	return nil
}
