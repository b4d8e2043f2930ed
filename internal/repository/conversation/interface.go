package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository handles conversation rows, scoped to an owner.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Conversation, error)
	FindByUserIDWithPagination(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Conversation, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// TouchUpdatedAt advances updated_at, and sets the title too when title is non-nil.
	TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time, title *string) error
}
