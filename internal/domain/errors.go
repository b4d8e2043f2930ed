// File: internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrorType classifies a domain error for translation at the HTTP boundary.
type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeAuth       ErrorType = "AUTH"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeUpstream   ErrorType = "UPSTREAM"
	ErrTypeCrypto     ErrorType = "CRYPTO"
)

// Error is the single error type crossing service boundaries.
// Two errors are considered equal by errors.Is when their codes match.
type Error struct {
	Type      ErrorType
	Code      string
	Operation string
	Message   string
	Status    int // upstream HTTP status, when Type is ErrTypeUpstream
	Cause     error
}

func (e *Error) Error() string {
	prefix := string(e.Type)
	if e.Operation != "" {
		prefix = fmt.Sprintf("%s error in %s", e.Type, e.Operation)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels. Compare with errors.Is; build instances with the constructors below.
var (
	ErrInvalidInput          = &Error{Type: ErrTypeValidation, Code: "INVALID_INPUT", Message: "invalid input"}
	ErrRegistrationClosed    = &Error{Type: ErrTypeValidation, Code: "REGISTRATION_CLOSED", Message: "registration is closed, an admin already exists"}
	ErrDuplicateEmail        = &Error{Type: ErrTypeValidation, Code: "DUPLICATE_EMAIL", Message: "user with this email already exists"}
	ErrNoProvider            = &Error{Type: ErrTypeValidation, Code: "NO_PROVIDER", Message: "conversation has no associated provider"}
	ErrInvalidCredentials    = &Error{Type: ErrTypeAuth, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}
	ErrInvalidToken          = &Error{Type: ErrTypeAuth, Code: "INVALID_TOKEN", Message: "invalid or expired token"}
	ErrUserNotFound          = &Error{Type: ErrTypeNotFound, Code: "USER_NOT_FOUND", Message: "user not found"}
	ErrProviderNotFound      = &Error{Type: ErrTypeNotFound, Code: "PROVIDER_NOT_FOUND", Message: "provider not found"}
	ErrConversationNotFound  = &Error{Type: ErrTypeNotFound, Code: "CONVERSATION_NOT_FOUND", Message: "conversation not found"}
	ErrUpstream              = &Error{Type: ErrTypeUpstream, Code: "UPSTREAM_ERROR", Message: "provider request failed"}
	ErrEmptyUpstreamResponse = &Error{Type: ErrTypeUpstream, Code: "EMPTY_UPSTREAM_RESPONSE", Message: "no response from AI"}
	ErrCrypto                = &Error{Type: ErrTypeCrypto, Code: "CRYPTO_ERROR", Message: "cryptographic operation failed"}
)

// Wrap returns a copy of sentinel bound to an operation and cause.
func Wrap(sentinel *Error, operation string, cause error) *Error {
	e := *sentinel
	e.Operation = operation
	e.Cause = cause
	return &e
}

func NewValidationError(operation, msg string) *Error {
	return &Error{Type: ErrTypeValidation, Code: ErrInvalidInput.Code, Operation: operation, Message: msg}
}

func NewCryptoError(operation string, cause error) *Error {
	return Wrap(ErrCrypto, operation, cause)
}

// NewUpstreamError records the provider's status and body for diagnostics.
func NewUpstreamError(operation string, status int, body string, cause error) *Error {
	e := Wrap(ErrUpstream, operation, cause)
	e.Status = status
	if status > 0 {
		e.Message = fmt.Sprintf("AI API error: %d - %s", status, body)
	} else if cause != nil {
		e.Message = fmt.Sprintf("AI API request failed: %v", cause)
	}
	return e
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
