package gormrepo

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Create(product).Error
}

func (r *productRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "uuid = ?", uuid).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Save(product).Error
}

// Delete is a soft delete; the row keeps its uuid but disappears from reads.
func (r *productRepository) Delete(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", product.ID).Error
}

func (r *productRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	total, err := paginate(query, params, &products, "Category")
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ExistsInCategory(ctx context.Context, categoryUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&domain.Product{}).
		Where("category_uuid = ?", categoryUUID).
		Count(&count).Error
	return count > 0, err
}
