package provider

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
)

var ErrProviderNotFound = errors.New("provider not found")

// Changes lists the columns an update may touch. Nil fields are left alone.
type Changes struct {
	Name            *string
	APIKeyEncrypted *string
	BaseURL         *string
	IsActive        *bool
	UpdatedAt       time.Time
}

// ProviderRepository handles provider rows. Every method is scoped to an owner.
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Provider, error)
	Update(ctx context.Context, id, userID uuid.UUID, changes Changes) (*domain.Provider, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}
