// File: internal/dtos/auth.go
package dtos

import (
	"net/mail"
	"strings"

	"github.com/iyunix/go-mindster/internal/domain"
)

const PasswordMinLength = 8

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !validEmail(r.Email) {
		return domain.NewValidationError("register", "invalid email address")
	}
	if len([]rune(r.Password)) < PasswordMinLength {
		return domain.NewValidationError("register", "Password must be at least 8 characters")
	}
	return nil
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !validEmail(r.Email) {
		return domain.NewValidationError("login", "invalid email address")
	}
	return nil
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, ".")
}
