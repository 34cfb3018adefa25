package service

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/google/uuid"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

type CategoryInput struct {
	Title *string
	Slug  *string
}

func (s *CategoryService) List(ctx context.Context, params domain.ListParams) (domain.Page[*domain.Category], error) {
	if err := params.ValidateSort(domain.CategorySortColumns); err != nil {
		return domain.Page[*domain.Category]{}, err
	}
	categories, total, err := s.categoryRepo.List(ctx, params)
	if err != nil {
		return domain.Page[*domain.Category]{}, err
	}
	return domain.NewPage(categories, total, params), nil
}

func (s *CategoryService) Get(ctx context.Context, uuid string) (*domain.Category, error) {
	return s.categoryRepo.GetByUUID(ctx, uuid)
}

func (s *CategoryService) Create(ctx context.Context, title, slug string) (*domain.Category, error) {
	if err := s.checkSlug(ctx, slug, 0); err != nil {
		return nil, err
	}

	category := &domain.Category{
		UUID:  uuid.NewString(),
		Title: title,
		Slug:  slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update applies the non-nil fields of input.
func (s *CategoryService) Update(ctx context.Context, uuid string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if input.Slug != nil && *input.Slug != category.Slug {
		if err := s.checkSlug(ctx, *input.Slug, category.ID); err != nil {
			return nil, err
		}
		category.Slug = *input.Slug
	}
	setIf(&category.Title, input.Title)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that products still point at.
func (s *CategoryService) Delete(ctx context.Context, uuid string) error {
	category, err := s.categoryRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return err
	}

	inUse, err := s.productRepo.ExistsInCategory(ctx, category.UUID)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}
	return s.categoryRepo.Delete(ctx, category)
}

func (s *CategoryService) checkSlug(ctx context.Context, slug string, exceptID uint) error {
	taken, err := s.categoryRepo.SlugTaken(ctx, slug, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrSlugTaken
	}
	return nil
}
