package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var ErrInvalidMetadata = errors.New("metadata must be a JSON object")

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type ProductInput struct {
	CategoryUUID string
	Title        string
	Price        decimal.Decimal
	Description  string
	Metadata     json.RawMessage
}

func (s *ProductService) List(ctx context.Context, params domain.ListParams) (domain.Page[*domain.Product], error) {
	if err := params.ValidateSort(domain.ProductSortColumns); err != nil {
		return domain.Page[*domain.Product]{}, err
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return domain.Page[*domain.Product]{}, err
	}
	return domain.NewPage(products, total, params), nil
}

func (s *ProductService) Get(ctx context.Context, uuid string) (*domain.Product, error) {
	return s.productRepo.GetByUUID(ctx, uuid)
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{UUID: uuid.NewString()}
	if err := s.apply(ctx, product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, uuid string, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, uuid string) error {
	product, err := s.productRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product)
}

func (s *ProductService) apply(ctx context.Context, product *domain.Product, input ProductInput) error {
	category, err := s.categoryRepo.GetByUUID(ctx, input.CategoryUUID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUnknownCategory
	}
	if err != nil {
		return err
	}

	metadata, err := NormalizeMetadata(input.Metadata)
	if err != nil {
		return err
	}

	product.CategoryUUID = category.UUID
	product.Category = category
	product.Title = input.Title
	product.Price = input.Price.Round(2)
	product.Description = input.Description
	product.Metadata = metadata
	return nil
}

// NormalizeMetadata accepts a JSON object, or a JSON string whose contents
// are an object, and returns the object. Empty input becomes {}.
func NormalizeMetadata(raw json.RawMessage) (datatypes.JSON, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return datatypes.JSON("{}"), nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, ErrInvalidMetadata
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, ErrInvalidMetadata
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
