package service_test

import (
	"context"
	"testing"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository/gormrepo"
	"github.com/dom/petshop-api/internal/service"
	"github.com/dom/petshop-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_EnsureStatuses(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := gormrepo.NewRepositories(testDB.DB)
	orders := service.NewOrderService(repos.Order, repos.Product)
	ctx := context.Background()

	first, err := orders.EnsureStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, first, len(domain.DefaultOrderStatuses))

	second, err := orders.EnsureStatuses(ctx)
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].UUID, second[i].UUID, "statuses must not be duplicated")
	}
}

func TestOrderService_Place(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := gormrepo.NewRepositories(testDB.DB)
	orders := service.NewOrderService(repos.Order, repos.Product)
	ctx := context.Background()

	_, err := orders.EnsureStatuses(ctx)
	require.NoError(t, err)

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	food := testutil.NewProductBuilder().WithPrice("12.50").Build(t, testDB.DB)
	toy := testutil.NewProductBuilder().WithPrice("3.25").Build(t, testDB.DB)

	payment, err := orders.CreatePayment(ctx, domain.PaymentBankTransfer, map[string]string{
		"swift": "BUCKGB22",
		"iban":  "GB33BUKB20201555555555",
		"name":  "Jane Doe",
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      service.PlaceOrderInput
		wantAmount string
		wantStatus string
		wantErr    error
	}{
		{
			name: "amount from catalog prices",
			input: service.PlaceOrderInput{
				Payment:     payment,
				Lines:       []domain.OrderLine{{Product: food.UUID, Quantity: 2}, {Product: toy.UUID, Quantity: 1}},
				Address:     domain.OrderAddress{Billing: "1 Main St", Shipping: "1 Main St"},
				DeliveryFee: decimal.NewFromInt(15),
			},
			wantAmount: "28.25",
			wantStatus: domain.OrderStatusPending,
		},
		{
			name: "explicit status",
			input: service.PlaceOrderInput{
				Status: domain.OrderStatusShipped,
				Lines:  []domain.OrderLine{{Product: toy.UUID, Quantity: 4}},
			},
			wantAmount: "13",
			wantStatus: domain.OrderStatusShipped,
		},
		{
			name:    "no lines",
			input:   service.PlaceOrderInput{},
			wantErr: service.ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			input: service.PlaceOrderInput{
				Lines: []domain.OrderLine{{Product: toy.UUID, Quantity: 0}},
			},
			wantErr: service.ErrEmptyOrder,
		},
		{
			name: "unknown product",
			input: service.PlaceOrderInput{
				Lines: []domain.OrderLine{{Product: uuid.NewString(), Quantity: 1}},
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := orders.Place(ctx, user, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, order.Amount.String())
			assert.Equal(t, tt.wantStatus, order.OrderStatus.Title)
		})
	}

	placed, total, err := repos.Order.ListByUser(ctx, user.ID, domain.ListParams{Page: 1, Limit: 10, SortBy: "amount", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.NotNil(t, placed[0].Payment)
	assert.Equal(t, domain.PaymentBankTransfer, placed[0].Payment.Type)
	assert.Equal(t, "15", placed[0].DeliveryFee.String())
}
