package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iyunix/go-mindster/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUsersExist   = errors.New("a user already exists")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository handles user data operations.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateFirst inserts user only while the table is empty. The count and the insert
	// share one transaction; the unique email index backs up the residual race.
	CreateFirst(ctx context.Context, user *domain.User) error
}
