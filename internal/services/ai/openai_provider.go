// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-mindster/internal/domain"
)

type OpenAIProvider struct {
	config *Config
	logger Logger
}

func NewOpenAIProvider(config *Config, logger Logger) *OpenAIProvider {
	if config == nil {
		config = DefaultConfig()
	}
	return &OpenAIProvider{config: config, logger: logger}
}

// client builds a go-openai client bound to one credential. Clients are cheap and
// not cached, so a key never outlives the call that needed it.
func (p *OpenAIProvider) client(cred Credential) *openai.Client {
	cfg := openai.DefaultConfig(cred.APIKey)
	cfg.BaseURL = cred.normalizedBaseURL()
	httpClient := http.DefaultClient
	if p.config.HTTPClient != nil {
		httpClient = p.config.HTTPClient
	}
	wrapped := *httpClient
	base := wrapped.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = bodyCapture{base: base}
	cfg.HTTPClient = &wrapped
	return openai.NewClientWithConfig(cfg)
}

// Complete posts the full history to {baseUrl}/chat/completions and returns the
// first choice's text. No retries are attempted.
func (p *OpenAIProvider) Complete(ctx context.Context, cred Credential, model string, history []ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	p.logger.Debug("sending completion request",
		"base_url", cred.normalizedBaseURL(),
		"model", model,
		"history_length", len(messages))

	ctx, failed := withErrorBody(ctx)
	resp, err := p.client(cred).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		upstream := toUpstreamError("chat_completion", err, failed.data)
		p.logger.Warn("completion request failed",
			"base_url", cred.normalizedBaseURL(),
			"model", model,
			"status", upstream.Status)
		return "", upstream
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		p.logger.Warn("completion response had no content", "model", model, "choices", len(resp.Choices))
		return "", domain.Wrap(domain.ErrEmptyUpstreamResponse, "chat_completion", nil)
	}

	return resp.Choices[0].Message.Content, nil
}

// ListModels issues GET {baseUrl}/models with bearer auth.
func (p *OpenAIProvider) ListModels(ctx context.Context, cred Credential) ([]string, error) {
	ctx, failed := withErrorBody(ctx)
	list, err := p.client(cred).ListModels(ctx)
	if err != nil {
		return nil, toUpstreamError("list_models", err, failed.data)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
