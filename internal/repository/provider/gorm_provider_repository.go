// File: internal/repository/provider/gorm_provider_repository.go
package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/repository"
)

type gormProviderRepository struct {
	db     *gorm.DB
	logger repository.Logger
}

func NewProviderRepository(db *gorm.DB, logger repository.Logger) ProviderRepository {
	return &gormProviderRepository{db: db, logger: logger}
}

func (r *gormProviderRepository) Create(ctx context.Context, p *domain.Provider) error {
	if p.UserID == uuid.Nil {
		return errors.New("invalid user ID")
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		r.logger.Error("database error during provider creation", "user_id", p.UserID, "error", err)
		return errors.New("database error creating provider")
	}
	r.logger.Info("provider created", "provider_id", p.ID, "user_id", p.UserID)
	return nil
}

func (r *gormProviderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error) {
	var providers []domain.Provider
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&providers).Error
	if err != nil {
		r.logger.Error("database error listing providers", "user_id", userID, "error", err)
		return nil, errors.New("database error fetching providers")
	}
	return providers, nil
}

func (r *gormProviderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProviderNotFound
	}
	r.logger.Error("database error finding provider", "provider_id", id, "error", err)
	return nil, errors.New("database error fetching provider")
}

func (r *gormProviderRepository) Update(ctx context.Context, id, userID uuid.UUID, changes Changes) (*domain.Provider, error) {
	values := map[string]interface{}{"updated_at": changes.UpdatedAt}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.APIKeyEncrypted != nil {
		values["api_key_encrypted"] = *changes.APIKeyEncrypted
	}
	if changes.BaseURL != nil {
		values["base_url"] = *changes.BaseURL
	}
	if changes.IsActive != nil {
		values["is_active"] = *changes.IsActive
	}

	var updated domain.Provider
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Provider{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(values)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProviderNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return nil, err
		}
		r.logger.Error("database error updating provider", "provider_id", id, "error", err)
		return nil, errors.New("database error updating provider")
	}
	return &updated, nil
}

func (r *gormProviderRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Provider{})
	if result.Error != nil {
		r.logger.Error("database error deleting provider", "provider_id", id, "error", result.Error)
		return false, errors.New("database error deleting provider")
	}
	if result.RowsAffected > 0 {
		r.logger.Info("provider deleted", "provider_id", id, "user_id", userID)
	}
	return result.RowsAffected > 0, nil
}
