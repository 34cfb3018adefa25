// Package seed fills a database with reference data and demo content.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/service"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

const (
	AdminEmail    = "admin@buckhill.co.uk"
	AdminPassword = "admin"
	UserPassword  = "userpassword"
)

type Options struct {
	Users               int
	OrdersPerUser       int
	Categories          int
	ProductsPerCategory int
}

func DefaultOptions() Options {
	return Options{
		Users:               10,
		OrdersPerUser:       10,
		Categories:          5,
		ProductsPerCategory: 6,
	}
}

// Summary counts what a run created.
type Summary struct {
	Statuses   int
	Payments   int
	Admin      bool
	Users      int
	Categories int
	Products   int
	Orders     int
}

// paymentFixtures are the canned payment records every shop starts with.
var paymentFixtures = []struct {
	Type    domain.PaymentType
	Details map[string]any
}{
	{
		Type: domain.PaymentCreditCard,
		Details: map[string]any{
			"holder_name": "John Doe",
			"number":      "1234567812345678",
			"ccv":         123,
			"expire_date": "12/23",
		},
	},
	{
		Type: domain.PaymentCashOnDelivery,
		Details: map[string]any{
			"first_name": "Jane",
			"last_name":  "Doe",
			"address":    "123 Main St",
		},
	},
	{
		Type: domain.PaymentBankTransfer,
		Details: map[string]any{
			"swift": "ABC123",
			"iban":  "DE89370400440532013000",
			"name":  "John Smith",
		},
	},
}

type Seeder struct {
	services *service.Services
	rng      *rand.Rand
	now      func() time.Time
}

func New(services *service.Services) *Seeder {
	return &Seeder{
		services: services,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:      time.Now,
	}
}

// Run seeds reference data first, then demo content sized by opts. The admin
// account is only created when missing, so Run can be repeated.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary

	statuses, err := s.services.Order.EnsureStatuses(ctx)
	if err != nil {
		return sum, err
	}
	sum.Statuses = len(statuses)

	payments := make([]*domain.Payment, 0, len(paymentFixtures))
	for _, fx := range paymentFixtures {
		payment, err := s.services.Order.CreatePayment(ctx, fx.Type, fx.Details)
		if err != nil {
			return sum, fmt.Errorf("seed payment %s: %w", fx.Type, err)
		}
		payments = append(payments, payment)
	}
	sum.Payments = len(payments)

	created, err := s.ensureAdmin(ctx)
	if err != nil {
		return sum, err
	}
	sum.Admin = created

	products, err := s.seedCatalog(ctx, opts, &sum)
	if err != nil {
		return sum, err
	}

	batch := s.now().Unix()
	for i := range opts.Users {
		user, _, err := s.services.Auth.Register(ctx, service.RegisterInput{
			FirstName:   faker.FirstName(),
			LastName:    faker.LastName(),
			Email:       fmt.Sprintf("user%d.%d@example.com", i, batch),
			Password:    UserPassword,
			Address:     faker.GetRealAddress().Address,
			PhoneNumber: fmt.Sprintf("555-555-55%02d", i%100),
			IsMarketing: s.rng.IntN(2) == 0,
		})
		if err != nil {
			return sum, fmt.Errorf("seed user %d: %w", i, err)
		}
		sum.Users++

		if len(products) == 0 {
			continue
		}
		for range opts.OrdersPerUser {
			if _, err := s.services.Order.Place(ctx, user, s.randomOrder(statuses, payments, products)); err != nil {
				return sum, fmt.Errorf("seed order: %w", err)
			}
			sum.Orders++
		}
	}

	slog.InfoContext(ctx, "database seeded",
		"users", sum.Users,
		"categories", sum.Categories,
		"products", sum.Products,
		"orders", sum.Orders,
	)
	return sum, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (bool, error) {
	_, err := s.services.Auth.CreateAdmin(ctx, service.RegisterInput{
		FirstName:   "Admin",
		LastName:    "User",
		Email:       AdminEmail,
		Password:    AdminPassword,
		Address:     "Admin Address",
		PhoneNumber: "000-000-0000",
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func (s *Seeder) seedCatalog(ctx context.Context, opts Options, sum *Summary) ([]*domain.Product, error) {
	var products []*domain.Product
	for range opts.Categories {
		title := strings.Join([]string{faker.Word(), faker.Word(), faker.Word()}, " ")
		category, err := s.services.Category.Create(ctx, title, slug.Make(title+" "+uuid.NewString()[:6]))
		if err != nil {
			return nil, fmt.Errorf("seed category: %w", err)
		}
		sum.Categories++

		for range opts.ProductsPerCategory {
			metadata := fmt.Sprintf(`{"brand":%q,"image":%q}`, uuid.NewString(), uuid.NewString())
			product, err := s.services.Product.Create(ctx, service.ProductInput{
				CategoryUUID: category.UUID,
				Title:        faker.Word(),
				Price:        decimal.NewFromInt(int64(1000 + s.rng.IntN(99000))).Shift(-2),
				Description:  faker.Paragraph(),
				Metadata:     []byte(metadata),
			})
			if err != nil {
				return nil, fmt.Errorf("seed product: %w", err)
			}
			products = append(products, product)
			sum.Products++
		}
	}
	return products, nil
}

func (s *Seeder) randomOrder(statuses []*domain.OrderStatus, payments []*domain.Payment, products []*domain.Product) service.PlaceOrderInput {
	lines := make([]domain.OrderLine, 1+s.rng.IntN(3))
	for i := range lines {
		lines[i] = domain.OrderLine{
			Product:  products[s.rng.IntN(len(products))].UUID,
			Quantity: 1 + s.rng.IntN(5),
		}
	}

	return service.PlaceOrderInput{
		Status:  statuses[s.rng.IntN(len(statuses))].Title,
		Payment: payments[s.rng.IntN(len(payments))],
		Lines:   lines,
		Address: domain.OrderAddress{
			Billing:  "123 Billing St",
			Shipping: "456 Shipping Ln",
		},
		DeliveryFee: decimal.NewFromInt(int64(5 + s.rng.IntN(16))),
	}
}
