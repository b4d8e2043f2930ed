// File: internal/dtos/provider.go
package dtos

import (
	"net/url"
	"strings"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/services/provider_services"
)

// CreateProviderRequest is the payload for POST /providers.
type CreateProviderRequest struct {
	Name    string  `json:"name"`
	APIKey  string  `json:"apiKey"`
	BaseURL *string `json:"baseUrl,omitempty"`
}

func (r *CreateProviderRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.NewValidationError("create_provider", "Name is required")
	}
	if r.APIKey == "" {
		return domain.NewValidationError("create_provider", "API key is required")
	}
	if r.BaseURL != nil && !validURL(*r.BaseURL) {
		return domain.NewValidationError("create_provider", "baseUrl must be a valid URL")
	}
	return nil
}

func (r *CreateProviderRequest) Input() provider_services.CreateInput {
	return provider_services.CreateInput{Name: r.Name, APIKey: r.APIKey, BaseURL: r.BaseURL}
}

// UpdateProviderRequest is the payload for PATCH /providers/{id}. Absent fields are
// left alone; "baseUrl": null restores the default gateway.
type UpdateProviderRequest struct {
	Name     *string          `json:"name"`
	APIKey   *string          `json:"apiKey"`
	BaseURL  Optional[string] `json:"baseUrl"`
	IsActive *bool            `json:"isActive"`
}

func (r *UpdateProviderRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return domain.NewValidationError("update_provider", "name must not be empty")
	}
	if r.APIKey != nil && *r.APIKey == "" {
		return domain.NewValidationError("update_provider", "apiKey must not be empty")
	}
	if r.BaseURL.Value != nil && !validURL(*r.BaseURL.Value) {
		return domain.NewValidationError("update_provider", "baseUrl must be a valid URL")
	}
	return nil
}

func (r *UpdateProviderRequest) Input() provider_services.UpdateInput {
	return provider_services.UpdateInput{
		Name:         r.Name,
		APIKey:       r.APIKey,
		BaseURL:      r.BaseURL.Value,
		ResetBaseURL: r.BaseURL.Set && r.BaseURL.Value == nil,
		IsActive:     r.IsActive,
	}
}

func validURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
