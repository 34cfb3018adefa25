package repository

import (
	"context"
	"time"

	"github.com/dom/petshop-api/internal/domain"
)

// Lookups return domain.ErrNotFound when no row matches.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user together with every revocation record it owns.
	Delete(ctx context.Context, user *domain.User) error
	ListNonAdmin(ctx context.Context, params domain.ListParams) ([]*domain.User, int64, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *domain.JwtToken) error
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.JwtToken, error)
	DeleteByUserUUID(ctx context.Context, userUUID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	Touch(ctx context.Context, id uint, at time.Time) error
}

type PasswordResetRepository interface {
	// Replace drops any existing record for the email before inserting.
	Replace(ctx context.Context, reset *domain.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	// Consume sets the new password hash, deletes the reset record and
	// revokes the user's session tokens.
	Consume(ctx context.Context, email string, userID uint, passwordHash string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByUUID(ctx context.Context, uuid string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, category *domain.Category) error
	List(ctx context.Context, params domain.ListParams) ([]*domain.Category, int64, error)
	SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByUUID(ctx context.Context, uuid string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, params domain.ListParams) ([]*domain.Product, int64, error)
	// ExistsInCategory includes soft-deleted products.
	ExistsInCategory(ctx context.Context, categoryUUID string) (bool, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	GetByUUID(ctx context.Context, uuid string) (*domain.File, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID uint, params domain.ListParams) ([]*domain.Order, int64, error)
	GetStatusByTitle(ctx context.Context, title string) (*domain.OrderStatus, error)
	CreateStatus(ctx context.Context, status *domain.OrderStatus) error
	CreatePayment(ctx context.Context, payment *domain.Payment) error
}

type Repositories struct {
	User          UserRepository
	Token         TokenRepository
	PasswordReset PasswordResetRepository
	Category      CategoryRepository
	Product       ProductRepository
	File          FileRepository
	Order         OrderRepository
}
