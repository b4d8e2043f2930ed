// File: internal/services/ai/config.go
package ai

import (
	"net/http"
	"strings"
)

// Config holds transport settings shared by every outbound provider call.
// Endpoint and key are per-call, carried by Credential.
type Config struct {
	// HTTPClient is used for all requests. Nil means http.DefaultClient,
	// which imposes no timeout of its own.
	HTTPClient *http.Client
}

func DefaultConfig() *Config {
	return &Config{HTTPClient: http.DefaultClient}
}

// Credential addresses one OpenAI-compatible endpoint.
type Credential struct {
	BaseURL string
	APIKey  string
}

// String never prints the key.
func (c Credential) String() string {
	return "ai.Credential{BaseURL: " + c.BaseURL + ", APIKey: [REDACTED]}"
}

func (c Credential) normalizedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
