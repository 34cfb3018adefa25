package gormrepo

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *categoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return duplicate(r.db.WithContext(ctx).Create(category).Error, domain.ErrSlugTaken)
}

func (r *categoryRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, "uuid = ?", uuid).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return duplicate(r.db.WithContext(ctx).Save(category).Error, domain.ErrSlugTaken)
}

func (r *categoryRepository) Delete(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", category.ID).Error
}

func (r *categoryRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Category, int64, error) {
	var categories []*domain.Category
	total, err := paginate(r.db.WithContext(ctx).Model(&domain.Category{}), params, &categories)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	return count > 0, err
}
