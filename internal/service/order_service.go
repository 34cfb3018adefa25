package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var ErrEmptyOrder = errors.New("order needs at least one product with a positive quantity")

type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

type PlaceOrderInput struct {
	Status      string
	Payment     *domain.Payment
	Lines       []domain.OrderLine
	Address     domain.OrderAddress
	DeliveryFee decimal.Decimal
}

// EnsureStatuses creates any missing default order status and returns all of
// them in their canonical order.
func (s *OrderService) EnsureStatuses(ctx context.Context) ([]*domain.OrderStatus, error) {
	statuses := make([]*domain.OrderStatus, 0, len(domain.DefaultOrderStatuses))
	for _, title := range domain.DefaultOrderStatuses {
		status, err := s.orderRepo.GetStatusByTitle(ctx, title)
		if errors.Is(err, domain.ErrNotFound) {
			status = &domain.OrderStatus{UUID: uuid.NewString(), Title: title}
			err = s.orderRepo.CreateStatus(ctx, status)
		}
		if err != nil {
			return nil, fmt.Errorf("order status %s: %w", title, err)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *OrderService) CreatePayment(ctx context.Context, typ domain.PaymentType, details any) (*domain.Payment, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	payment := &domain.Payment{
		UUID:    uuid.NewString(),
		Type:    typ,
		Details: datatypes.JSON(raw),
	}
	if err := s.orderRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Place records an order for user. The amount is the sum of current product
// prices times quantities; the delivery fee is kept separately.
func (s *OrderService) Place(ctx context.Context, user *domain.User, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	amount := decimal.Zero
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, ErrEmptyOrder
		}
		product, err := s.productRepo.GetByUUID(ctx, line.Product)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", line.Product, err)
		}
		amount = amount.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	title := input.Status
	if title == "" {
		title = domain.OrderStatusPending
	}
	status, err := s.orderRepo.GetStatusByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("order status %s: %w", title, err)
	}

	order := &domain.Order{
		UUID:          uuid.NewString(),
		UserID:        user.ID,
		OrderStatusID: status.ID,
		OrderStatus:   status,
		Products:      datatypes.NewJSONSlice(input.Lines),
		Address:       datatypes.NewJSONType(input.Address),
		DeliveryFee:   input.DeliveryFee.Round(2),
		Amount:        amount.Round(2),
	}
	if input.Payment != nil {
		order.PaymentID = &input.Payment.ID
		order.Payment = input.Payment
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
