// File: internal/services/chat/types.go
package chat

import (
	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
)

// Logger defines the logging interface used across chat services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type CreateInput struct {
	ProviderID uuid.UUID
	Model      string
	Title      *string
}

// SendResult holds both sides of one successful exchange.
type SendResult struct {
	UserMessage      domain.Message `json:"userMessage"`
	AssistantMessage domain.Message `json:"assistantMessage"`
}
