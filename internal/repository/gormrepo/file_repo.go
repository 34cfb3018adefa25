package gormrepo

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *fileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *domain.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepository) GetByUUID(ctx context.Context, uuid string) (*domain.File, error) {
	var file domain.File
	err := r.db.WithContext(ctx).First(&file, "uuid = ?", uuid).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}
