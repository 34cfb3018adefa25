package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	firstName string
	email     string
	password  string
	isAdmin   bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		firstName: "Test",
		email:     fmt.Sprintf("user_%s@example.com", uuid.NewString()[:8]),
		password:  "testpassword123",
	}
}

func (b *UserBuilder) WithFirstName(name string) *UserBuilder {
	b.firstName = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// AsAdmin marks the user as an administrator
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.isAdmin = true
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	// MinCost keeps the suite fast
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		UUID:        uuid.NewString(),
		FirstName:   b.firstName,
		LastName:    "User",
		IsAdmin:     b.isAdmin,
		Email:       b.email,
		Password:    string(hashedPassword),
		Address:     "1 Test Street",
		PhoneNumber: "555-0100",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates the user and logs in through the API,
// returning the session token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	path := "/user/login"
	if b.isAdmin {
		path = "/admin/login"
	}
	body, _ := json.Marshal(map[string]string{
		"email":    user.Email,
		"password": password,
	})

	resp, err := http.Post(ts.APIURL(path), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var env Envelope[struct {
		Token string `json:"token"`
	}]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return user, env.Data.Token
}

// CategoryBuilder creates test categories
type CategoryBuilder struct {
	title string
	slug  string
}

func NewCategoryBuilder() *CategoryBuilder {
	suffix := uuid.NewString()[:8]
	return &CategoryBuilder{
		title: "Category " + suffix,
		slug:  "category-" + suffix,
	}
}

func (b *CategoryBuilder) WithSlug(slug string) *CategoryBuilder {
	b.slug = slug
	return b
}

func (b *CategoryBuilder) WithTitle(title string) *CategoryBuilder {
	b.title = title
	return b
}

func (b *CategoryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{
		UUID:  uuid.NewString(),
		Title: b.title,
		Slug:  b.slug,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// ProductBuilder creates test products, creating a category when none is set
type ProductBuilder struct {
	category *domain.Category
	title    string
	price    decimal.Decimal
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		title: "Product " + uuid.NewString()[:8],
		price: decimal.RequireFromString("19.99"),
	}
}

func (b *ProductBuilder) WithCategory(category *domain.Category) *ProductBuilder {
	b.category = category
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.price = decimal.RequireFromString(price)
	return b
}

func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	if b.category == nil {
		b.category = NewCategoryBuilder().Build(t, db)
	}

	product := &domain.Product{
		UUID:         uuid.NewString(),
		CategoryUUID: b.category.UUID,
		Title:        b.title,
		Price:        b.price,
		Description:  "A product for tests",
		Metadata:     datatypes.JSON(`{"brand":"","image":""}`),
	}
	if err := db.Omit("Category").Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// OrderBuilder creates orders directly in the database
type OrderBuilder struct {
	user   *domain.User
	status string
	amount decimal.Decimal
}

func NewOrderBuilder(user *domain.User) *OrderBuilder {
	return &OrderBuilder{
		user:   user,
		status: domain.OrderStatusPending,
		amount: decimal.RequireFromString("42.50"),
	}
}

func (b *OrderBuilder) WithAmount(amount string) *OrderBuilder {
	b.amount = decimal.RequireFromString(amount)
	return b
}

func (b *OrderBuilder) Build(t *testing.T, db *gorm.DB) *domain.Order {
	t.Helper()

	var status domain.OrderStatus
	err := db.Where(domain.OrderStatus{Title: b.status}).
		Attrs(domain.OrderStatus{UUID: uuid.NewString()}).
		FirstOrCreate(&status).Error
	if err != nil {
		t.Fatalf("failed to create order status: %v", err)
	}

	order := &domain.Order{
		UUID:          uuid.NewString(),
		UserID:        b.user.ID,
		OrderStatusID: status.ID,
		Products:      datatypes.NewJSONSlice([]domain.OrderLine{{Product: uuid.NewString(), Quantity: 1}}),
		Address:       datatypes.NewJSONType(domain.OrderAddress{Billing: "1 Billing St", Shipping: "2 Shipping Ln"}),
		DeliveryFee:   decimal.NewFromInt(5),
		Amount:        b.amount,
	}
	if err := db.Omit("User", "OrderStatus", "Payment").Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}

// CreateAuthenticatedRequest builds a JSON request with an optional bearer token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends req with the default client and fails the test on transport errors
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
