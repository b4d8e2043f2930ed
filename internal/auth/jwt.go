// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
)

// DefaultTokenLifetime applies when no lifetime is configured.
const DefaultTokenLifetime = 7 * 24 * time.Hour

// MinSecretLength is the minimum signing secret size in bytes.
const MinSecretLength = 32

// Claims identify the caller. Sub mirrors UserID.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the verified caller extracted from a token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string, lifetime time.Duration) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
	}
	if lifetime == 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenManager{secret: []byte(secret), lifetime: lifetime, now: time.Now}, nil
}

// Lifetime is the validity window of newly issued tokens.
func (m *TokenManager) Lifetime() time.Duration { return m.lifetime }

// Issue signs a token for the user. It expires after the configured lifetime.
func (m *TokenManager) Issue(userID uuid.UUID, email string) (string, error) {
	if userID == uuid.Nil {
		return "", errors.New("user ID cannot be empty")
	}

	now := m.now()
	claims := Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature, algorithm and expiry. Every failure is ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, domain.Wrap(domain.ErrInvalidToken, "verify_token", errors.New("empty token"))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, domain.Wrap(domain.ErrInvalidToken, "verify_token", err)
	}
	if !token.Valid {
		return nil, domain.Wrap(domain.ErrInvalidToken, "verify_token", nil)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.Wrap(domain.ErrInvalidToken, "verify_token", errors.New("invalid userId claim"))
	}
	return &Identity{UserID: userID, Email: claims.Email}, nil
}
