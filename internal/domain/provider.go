// File: internal/domain/provider.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProviderBaseURL is the OpenAI-compatible gateway used when a provider has no base URL.
const DefaultProviderBaseURL = "https://openrouter.ai/api/v1"

// Provider is a user-owned OpenAI-compatible endpoint. Only the encrypted key is stored.
type Provider struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Name            string    `gorm:"not null"`
	APIKeyEncrypted string    `gorm:"not null"`
	BaseURL         string    `gorm:"not null;default:'https://openrouter.ai/api/v1'"`
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Conversations []Conversation `gorm:"foreignKey:ProviderID;constraint:OnDelete:SET NULL"`
}

// ProviderView is what callers see. It has no key field at all.
type ProviderView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	BaseURL   string    `json:"baseUrl"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Provider) View() ProviderView {
	return ProviderView{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		BaseURL:   p.BaseURL,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProviderCredential is a provider together with its decrypted key.
// It exists only for the duration of an outbound call and is never serialized.
type ProviderCredential struct {
	Provider Provider
	APIKey   string
}

func (c ProviderCredential) String() string {
	return "ProviderCredential{" + c.Provider.ID.String() + ", key:[REDACTED]}"
}
