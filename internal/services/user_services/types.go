package user_services

import "github.com/iyunix/go-mindster/internal/domain"

// Logger interface for all user services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	User  domain.UserView `json:"user"`
	Token string          `json:"token"`
}
