package provider_services

import (
	"context"

	"github.com/iyunix/go-mindster/internal/services/ai"
)

// Logger interface for provider services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SecretCipher encrypts provider keys at rest.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// ModelLister fetches an endpoint's model listing.
type ModelLister interface {
	ListModels(ctx context.Context, cred ai.Credential) ([]string, error)
}

type CreateInput struct {
	Name    string
	APIKey  string
	BaseURL *string
}

// UpdateInput carries only the fields a caller supplied. ResetBaseURL restores the
// default gateway and wins over BaseURL.
type UpdateInput struct {
	Name         *string
	APIKey       *string
	BaseURL      *string
	ResetBaseURL bool
	IsActive     *bool
}

// ConnectionResult is the outcome of a connection test.
type ConnectionResult struct {
	Success bool     `json:"success"`
	Models  []string `json:"models"`
	Error   string   `json:"error,omitempty"`
}
