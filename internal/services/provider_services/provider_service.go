// File: internal/services/provider_services/provider_service.go
package provider_services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository/provider"
	"github.com/iyunix/go-mindster/internal/services/ai"
)

// ProviderService manages a user's providers. Keys are encrypted before they reach the
// repository and decrypted only by GetWithSecret and TestConnection.
type ProviderService struct {
	repo   provider.ProviderRepository
	cipher SecretCipher
	models ModelLister
	logger Logger
	now    func() time.Time
}

func NewProviderService(repo provider.ProviderRepository, cipher SecretCipher, models ModelLister, logger Logger) *ProviderService {
	return &ProviderService{
		repo:   repo,
		cipher: cipher,
		models: models,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *ProviderService) WithClock(now func() time.Time) *ProviderService {
	s.now = now
	return s
}

func (s *ProviderService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.ProviderView, error) {
	providers, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.ProviderView, 0, len(providers))
	for i := range providers {
		views = append(views, providers[i].View())
	}
	return views, nil
}

func (s *ProviderService) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*domain.ProviderView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.APIKey == "" {
		return nil, domain.NewValidationError("create_provider", "name and apiKey are required")
	}

	encrypted, err := s.cipher.Encrypt(in.APIKey)
	if err != nil {
		s.logger.Error("provider key encryption failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	baseURL := domain.DefaultProviderBaseURL
	if in.BaseURL != nil && strings.TrimSpace(*in.BaseURL) != "" {
		baseURL = normalizeBaseURL(*in.BaseURL)
	}

	now := s.now()
	p := &domain.Provider{
		UserID:          ownerID,
		Name:            name,
		APIKeyEncrypted: encrypted,
		BaseURL:         baseURL,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("provider created", "provider_id", p.ID, "user_id", ownerID, "base_url", p.BaseURL)
	view := p.View()
	return &view, nil
}

func (s *ProviderService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ProviderView, error) {
	p, err := s.find(ctx, ownerID, id, "get_provider")
	if err != nil {
		return nil, err
	}
	view := p.View()
	return &view, nil
}

// GetWithSecret returns the provider with its decrypted key. It is for outbound calls
// only and must not back any response body.
func (s *ProviderService) GetWithSecret(ctx context.Context, ownerID, id uuid.UUID) (*domain.ProviderCredential, error) {
	p, err := s.find(ctx, ownerID, id, "resolve_provider")
	if err != nil {
		return nil, err
	}

	key, err := s.cipher.Decrypt(p.APIKeyEncrypted)
	if err != nil {
		s.logger.Error("stored provider key could not be decrypted", "provider_id", p.ID, "error", err)
		return nil, err
	}
	return &domain.ProviderCredential{Provider: *p, APIKey: key}, nil
}

func (s *ProviderService) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*domain.ProviderView, error) {
	changes := provider.Changes{IsActive: in.IsActive, UpdatedAt: s.now()}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("update_provider", "name must not be empty")
		}
		changes.Name = &name
	}

	if in.APIKey != nil {
		if *in.APIKey == "" {
			return nil, domain.NewValidationError("update_provider", "apiKey must not be empty")
		}
		encrypted, err := s.cipher.Encrypt(*in.APIKey)
		if err != nil {
			s.logger.Error("provider key encryption failed", "provider_id", id, "error", err)
			return nil, err
		}
		changes.APIKeyEncrypted = &encrypted
	}

	switch {
	case in.ResetBaseURL:
		def := domain.DefaultProviderBaseURL
		changes.BaseURL = &def
	case in.BaseURL != nil:
		if strings.TrimSpace(*in.BaseURL) == "" {
			return nil, domain.NewValidationError("update_provider", "baseUrl must not be empty")
		}
		u := normalizeBaseURL(*in.BaseURL)
		changes.BaseURL = &u
	}

	p, err := s.repo.Update(ctx, id, ownerID, changes)
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotFound) {
			return nil, domain.Wrap(domain.ErrProviderNotFound, "update_provider", nil)
		}
		return nil, err
	}

	s.logger.Info("provider updated", "provider_id", id, "user_id", ownerID, "key_rotated", in.APIKey != nil)
	view := p.View()
	return &view, nil
}

func (s *ProviderService) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("provider deleted", "provider_id", id, "user_id", ownerID)
	}
	return deleted, nil
}

// TestConnection lists the provider's models. Upstream and decryption failures are
// reported in the result rather than as errors; only an unknown provider is an error.
func (s *ProviderService) TestConnection(ctx context.Context, ownerID, id uuid.UUID) (*ConnectionResult, error) {
	cred, err := s.GetWithSecret(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return nil, err
		}
		return &ConnectionResult{Success: false, Error: failureMessage(err)}, nil
	}

	models, err := s.models.ListModels(ctx, ai.Credential{BaseURL: cred.Provider.BaseURL, APIKey: cred.APIKey})
	if err != nil {
		s.logger.Warn("provider connection test failed", "provider_id", id, "error", err)
		return &ConnectionResult{Success: false, Error: failureMessage(err)}, nil
	}

	s.logger.Info("provider connection test passed", "provider_id", id, "models", len(models))
	if models == nil {
		models = []string{}
	}
	return &ConnectionResult{Success: true, Models: models}, nil
}

func (s *ProviderService) find(ctx context.Context, ownerID, id uuid.UUID, op string) (*domain.Provider, error) {
	p, err := s.repo.FindByIDForUser(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, provider.ErrProviderNotFound) {
			return nil, domain.Wrap(domain.ErrProviderNotFound, op, nil)
		}
		return nil, err
	}
	return p, nil
}

func normalizeBaseURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

func failureMessage(err error) string {
	if de, ok := domain.AsError(err); ok {
		return de.Message
	}
	return "Unknown error"
}
