// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/auth"
	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository/user"
	"github.com/iyunix/go-mindster/internal/services"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// AuthService owns registration, login and the current-user lookup.
// Registration is open only while no user exists; the first user is the admin.
type AuthService struct {
	userRepo user.UserRepository
	tokens   TokenIssuer
	logger   Logger
}

func NewAuthService(userRepo user.UserRepository, tokens TokenIssuer, logger Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string, name *string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.NewValidationError("register", "email and password are required")
	}

	s.logger.Info("registration attempt", "email", services.MaskEmail(email))

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		s.logger.Warn("registration rejected, admin already exists", "email", services.MaskEmail(email))
		return nil, domain.Wrap(domain.ErrRegistrationClosed, "register", nil)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domain.Wrap(domain.ErrDuplicateEmail, "register", nil)
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         trimName(name),
		IsAdmin:      true,
	}
	if err := s.userRepo.CreateFirst(ctx, u); err != nil {
		switch {
		case errors.Is(err, user.ErrUsersExist):
			return nil, domain.Wrap(domain.ErrRegistrationClosed, "register", err)
		case errors.Is(err, user.ErrEmailTaken):
			return nil, domain.Wrap(domain.ErrDuplicateEmail, "register", err)
		default:
			return nil, err
		}
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.logger.Error("token issue failed", "error", err, "user_id", u.ID)
		return nil, err
	}

	s.logger.Info("admin registered", "user_id", u.ID, "email", services.MaskEmail(email))
	return &AuthResult{User: u.View(), Token: token}, nil
}

// Login fails with the same error whether the email is unknown or the password wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.logger.Warn("login failed", "email", services.MaskEmail(email), "reason", "user_not_found")
			return nil, domain.Wrap(domain.ErrInvalidCredentials, "login", nil)
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		s.logger.Error("stored password hash is malformed", "user_id", u.ID, "error", err)
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "login", nil)
	}
	if !ok {
		s.logger.Warn("login failed", "email", services.MaskEmail(email), "reason", "invalid_password")
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "login", nil)
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.logger.Error("token issue failed", "error", err, "user_id", u.ID)
		return nil, err
	}

	s.logger.Info("login successful", "user_id", u.ID)
	return &AuthResult{User: u.View(), Token: token}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.UserView, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, domain.Wrap(domain.ErrUserNotFound, "current_user", nil)
		}
		return nil, err
	}
	view := u.View()
	return &view, nil
}

func trimName(name *string) *string {
	if name == nil {
		return nil
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return nil
	}
	return &n
}
