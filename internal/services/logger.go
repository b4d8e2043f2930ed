// File: internal/services/logger.go
package services

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ProductionLogger writes leveled key/value records through slog.
type ProductionLogger struct {
	logger *slog.Logger
}

// NewProductionLogger creates a logger for service. JSON output when structured is true,
// human-readable text otherwise.
func NewProductionLogger(w io.Writer, service string, level slog.Level, structured bool) *ProductionLogger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &ProductionLogger{logger: slog.New(handler).With("service", service)}
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	p.logger.Info(msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.logger.Error(msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	p.logger.Debug(msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	p.logger.Warn(msg, keysAndValues...)
}

// Slog exposes the underlying slog.Logger, e.g. for http.Server.ErrorLog.
func (p *ProductionLogger) Slog() *slog.Logger {
	return p.logger
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// ParseLogLevel maps LOG_LEVEL values onto slog levels. Unknown values mean INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger is the environment-based logger factory.
func NewLogger(service, env, level string) Logger {
	if env == "test" {
		return &NoOpLogger{}
	}
	return NewProductionLogger(os.Stdout, service, ParseLogLevel(level), env == "production")
}

// MaskEmail keeps enough of an address to correlate log lines without recording it.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "****"
	}
	local := email[:at]
	if len(local) > 2 {
		local = local[:2]
	}
	return local + "****" + email[at:]
}
