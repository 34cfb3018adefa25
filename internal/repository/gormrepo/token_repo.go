package gormrepo

import (
	"context"
	"time"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *tokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.JwtToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.JwtToken, error) {
	var token domain.JwtToken
	err := r.db.WithContext(ctx).First(&token, "unique_id = ?", uniqueID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByUserUUID(ctx context.Context, userUUID string) (int64, error) {
	db := r.db.WithContext(ctx)
	sub := db.Model(&domain.User{}).Select("id").Where("uuid = ?", userUUID)
	res := db.Where("user_id IN (?)", sub).Delete(&domain.JwtToken{})
	return res.RowsAffected, res.Error
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.JwtToken{}, "user_id = ?", userID).Error
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&domain.JwtToken{})
	return res.RowsAffected, res.Error
}

func (r *tokenRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.JwtToken{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}
