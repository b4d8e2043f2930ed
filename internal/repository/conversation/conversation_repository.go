// File: internal/repository/conversation/conversation_repository.go
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository"
)

type gormConversationRepository struct {
	db     *gorm.DB
	logger repository.Logger
}

func NewConversationRepository(db *gorm.DB, logger repository.Logger) ConversationRepository {
	return &gormConversationRepository{db: db, logger: logger}
}

func (r *gormConversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	if c.UserID == uuid.Nil {
		return errors.New("invalid user ID")
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.logger.Error("database error during conversation creation", "user_id", c.UserID, "error", err)
		return errors.New("database error creating conversation")
	}
	r.logger.Info("conversation created", "conversation_id", c.ID, "user_id", c.UserID)
	return nil
}

func (r *gormConversationRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Conversation, error) {
	var c domain.Conversation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err == nil {
		return &c, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	r.logger.Error("database error finding conversation", "conversation_id", id, "error", err)
	return nil, errors.New("database error fetching conversation")
}

// FindByUserIDWithPagination lists most-recently-active conversations first.
func (r *gormConversationRepository) FindByUserIDWithPagination(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Conversation, error) {
	limit, offset = repository.ClampPage(limit, offset, 20)

	var conversations []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&conversations).Error
	if err != nil {
		r.logger.Error("database error in paginated conversation query", "user_id", userID, "error", err)
		return nil, errors.New("database error retrieving conversations")
	}
	return conversations, nil
}

func (r *gormConversationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Conversation{})
	if result.Error != nil {
		r.logger.Error("database error deleting conversation", "conversation_id", id, "error", result.Error)
		return false, errors.New("database error deleting conversation")
	}
	return result.RowsAffected > 0, nil
}

func (r *gormConversationRepository) TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time, title *string) error {
	values := map[string]interface{}{"updated_at": at}
	if title != nil {
		values["title"] = *title
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		r.logger.Error("database error updating conversation timestamp", "conversation_id", id, "error", result.Error)
		return errors.New("database error updating conversation timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}
