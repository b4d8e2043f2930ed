// File: internal/services/ai/interface.go
package ai

import (
	"github.com/iyunix/go-mindster/internal/domain"
)

// ChatMessage is one turn of the history sent to a completion endpoint.
type ChatMessage struct {
	Role    domain.Role
	Content string
}

// Logger interface for the ai package.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
