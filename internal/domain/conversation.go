// File: internal/domain/conversation.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a message thread bound to one user and at most one provider.
type Conversation struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	ProviderID *uuid.UUID `gorm:"type:uuid;index" json:"providerId"`
	Model      string     `gorm:"not null" json:"model"`
	Title      *string    `json:"title"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"index" json:"updatedAt"`

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// ConversationWithMessages carries messages newest-first.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"messages"`
}
