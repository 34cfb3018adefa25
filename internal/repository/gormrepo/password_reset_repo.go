package gormrepo

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *passwordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Replace(ctx context.Context, reset *domain.PasswordReset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.PasswordReset{}, "email = ?", reset.Email).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	err := r.db.WithContext(ctx).First(&reset, "token = ?", token).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &reset, nil
}

func (r *passwordResetRepository) Consume(ctx context.Context, email string, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.User{}).
			Where("id = ?", userID).
			Update("password", passwordHash).Error
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.PasswordReset{}, "email = ?", email).Error; err != nil {
			return err
		}
		return NewTokenRepository(tx).DeleteByUserID(ctx, userID)
	})
}
