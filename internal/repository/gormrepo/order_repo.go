package gormrepo

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *orderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Omit("User", "OrderStatus", "Payment").Create(order).Error
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint, params domain.ListParams) ([]*domain.Order, int64, error) {
	var orders []*domain.Order
	query := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ?", userID)
	total, err := paginate(query, params, &orders, "OrderStatus", "Payment")
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) GetStatusByTitle(ctx context.Context, title string) (*domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := r.db.WithContext(ctx).First(&status, "title = ?", title).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &status, nil
}

func (r *orderRepository) CreateStatus(ctx context.Context, status *domain.OrderStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *orderRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
