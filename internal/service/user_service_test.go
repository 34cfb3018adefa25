package service_test

import (
	"context"
	"testing"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository/gormrepo"
	"github.com/dom/petshop-api/internal/service"
	"github.com/dom/petshop-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := gormrepo.NewRepositories(testDB.DB)
	users := service.NewUserService(repos.User, repos.Order)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithFirstName("Before").Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := users.Update(ctx, user, service.UpdateUserInput{Email: &other.Email})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("partial update", func(t *testing.T) {
		name := "After"
		password := "brandnew123"
		marketing := true

		got, err := users.Update(ctx, user, service.UpdateUserInput{
			FirstName:   &name,
			Password:    &password,
			IsMarketing: &marketing,
		})
		require.NoError(t, err)

		reloaded, err := repos.User.GetByID(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", reloaded.FirstName)
		assert.Equal(t, "User", reloaded.LastName)
		assert.True(t, reloaded.IsMarketing)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte(password)))
	})
}

func TestUserService_Customers(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := gormrepo.NewRepositories(testDB.DB)
	users := service.NewUserService(repos.User, repos.Order)
	ctx := context.Background()

	admin, _ := testutil.NewUserBuilder().AsAdmin().Build(t, testDB.DB)
	customer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	page, err := users.ListCustomers(ctx, domain.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, customer.UUID, page.Data[0].UUID)

	_, err = users.GetCustomer(ctx, admin.UUID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "admins are not editable as customers")

	got, err := users.GetCustomer(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.ID)
}

func TestUserService_Orders(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := gormrepo.NewRepositories(testDB.DB)
	users := service.NewUserService(repos.User, repos.Order)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	for range 3 {
		testutil.NewOrderBuilder(user).Build(t, testDB.DB)
	}

	page, err := users.Orders(ctx, user, domain.ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.LastPage)
	assert.Len(t, page.Data, 1)

	_, err = users.Orders(ctx, user, domain.ListParams{Page: 1, Limit: 2, SortBy: "user_id"})
	assert.ErrorIs(t, err, domain.ErrInvalidSort)
}
