package gormrepo

import (
	"context"
	"time"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return duplicate(r.db.WithContext(ctx).Create(user).Error, domain.ErrEmailTaken)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "uuid = ?", uuid).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return duplicate(r.db.WithContext(ctx).Save(user).Error, domain.ErrEmailTaken)
}

func (r *userRepository) Delete(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewTokenRepository(tx).DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Delete(&domain.Order{}, "user_id = ?", user.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, "id = ?", user.ID).Error
	})
}

func (r *userRepository) ListNonAdmin(ctx context.Context, params domain.ListParams) ([]*domain.User, int64, error) {
	var users []*domain.User
	query := r.db.WithContext(ctx).Model(&domain.User{}).Where("is_admin = ?", false)
	total, err := paginate(query, params, &users)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
