// File: internal/middleware/constants.go
package middleware

import (
	"context"

	"github.com/iyunix/go-mindster/internal/auth"
)

// Context keys for middleware communication
type contextKey string

const IdentityKey contextKey = "identity"

// Logger interface for middleware
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom returns the caller established by AuthMiddleware.
func IdentityFrom(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*auth.Identity)
	return id, ok && id != nil
}
