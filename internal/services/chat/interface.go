// File: internal/services/chat/interface.go
package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/services/ai"
)

// ProviderSource is the slice of the provider registry the orchestrator needs.
// GetWithSecret is reachable only through here, never from an HTTP handler.
type ProviderSource interface {
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ProviderView, error)
	GetWithSecret(ctx context.Context, ownerID, id uuid.UUID) (*domain.ProviderCredential, error)
}

// Completer performs one chat completion call.
type Completer interface {
	Complete(ctx context.Context, cred ai.Credential, model string, history []ai.ChatMessage) (string, error)
}
