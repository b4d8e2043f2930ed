// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger repository.Logger
}

func NewGormUserRepository(db *gorm.DB, logger repository.Logger) UserRepository {
	return &gormUserRepository{db: db, logger: logger}
}

func (r *gormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		r.logger.Error("database error counting users", "error", err)
		return 0, errors.New("database error counting users")
	}
	return count, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, ErrUserNotFound
	}
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrUserNotFound
	}
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

func (r *gormUserRepository) CreateFirst(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsersExist
		}

		var taken int64
		if err := tx.Model(&domain.User{}).Where("email = ?", user.Email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrEmailTaken
		}

		return tx.Create(user).Error
	})

	switch {
	case err == nil:
		r.logger.Info("user created", "user_id", user.ID, "is_admin", user.IsAdmin)
		return nil
	case errors.Is(err, ErrUsersExist), errors.Is(err, ErrEmailTaken):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrEmailTaken
	default:
		r.logger.Error("database error during user creation", "error", err)
		return errors.New("database error creating user")
	}
}

func (r *gormUserRepository) handleFindError(err error, user *domain.User, op string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	r.logger.Error("database error finding user", "operation", op, "error", err)
	return nil, errors.New("database error fetching user")
}

// Emails are compared case-insensitively by storing them lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
