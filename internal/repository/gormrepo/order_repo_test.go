package gormrepo_test

import (
	"context"
	"testing"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository/gormrepo"
	"github.com/dom/petshop-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestOrderRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := gormrepo.NewOrderRepository(testDB.DB)
	ctx := context.Background()

	status := &domain.OrderStatus{UUID: uuid.NewString(), Title: domain.OrderStatusShipped}
	require.NoError(t, repo.CreateStatus(ctx, status))

	got, err := repo.GetStatusByTitle(ctx, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, status.UUID, got.UUID)

	_, err = repo.GetStatusByTitle(ctx, "Lost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	payment := &domain.Payment{
		UUID:    uuid.NewString(),
		Type:    domain.PaymentCashOnDelivery,
		Details: datatypes.JSON(`{"first_name":"Jane","last_name":"Doe","address":"1 Main St"}`),
	}
	require.NoError(t, repo.CreatePayment(ctx, payment))

	alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	order := &domain.Order{
		UUID:          uuid.NewString(),
		UserID:        alice.ID,
		OrderStatusID: status.ID,
		PaymentID:     &payment.ID,
		Products:      datatypes.NewJSONSlice([]domain.OrderLine{{Product: uuid.NewString(), Quantity: 2}}),
		Address:       datatypes.NewJSONType(domain.OrderAddress{Billing: "b", Shipping: "s"}),
	}
	require.NoError(t, repo.Create(ctx, order))
	testutil.NewOrderBuilder(alice).WithAmount("10.00").Build(t, testDB.DB)
	testutil.NewOrderBuilder(bob).Build(t, testDB.DB)

	orders, total, err := repo.ListByUser(ctx, alice.ID, domain.ListParams{Page: 1, Limit: 10, SortBy: "amount", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, orders, 2)

	assert.Equal(t, "10", orders[0].Amount.String())
	require.NotNil(t, orders[1].OrderStatus)
	assert.Equal(t, domain.OrderStatusShipped, orders[1].OrderStatus.Title)
	require.NotNil(t, orders[1].Payment)
	assert.Equal(t, domain.PaymentCashOnDelivery, orders[1].Payment.Type)
	assert.Equal(t, 2, orders[1].Products[0].Quantity)
}
