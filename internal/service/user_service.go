package service

import (
	"context"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

func NewUserService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	Avatar      *string
	Address     *string
	PhoneNumber *string
	IsMarketing *bool
}

func (s *UserService) Update(ctx context.Context, user *domain.User, input UpdateUserInput) (*domain.User, error) {
	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	setIf(&user.FirstName, input.FirstName)
	setIf(&user.LastName, input.LastName)
	setIf(&user.Address, input.Address)
	setIf(&user.PhoneNumber, input.PhoneNumber)
	setIf(&user.IsMarketing, input.IsMarketing)
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user, their orders and every session token.
func (s *UserService) Delete(ctx context.Context, user *domain.User) error {
	return s.userRepo.Delete(ctx, user)
}

func (s *UserService) Orders(ctx context.Context, user *domain.User, params domain.ListParams) (domain.Page[*domain.Order], error) {
	if err := params.ValidateSort(domain.OrderSortColumns); err != nil {
		return domain.Page[*domain.Order]{}, err
	}
	orders, total, err := s.orderRepo.ListByUser(ctx, user.ID, params)
	if err != nil {
		return domain.Page[*domain.Order]{}, err
	}
	return domain.NewPage(orders, total, params), nil
}

func (s *UserService) ListCustomers(ctx context.Context, params domain.ListParams) (domain.Page[*domain.User], error) {
	if err := params.ValidateSort(domain.UserSortColumns); err != nil {
		return domain.Page[*domain.User]{}, err
	}
	users, total, err := s.userRepo.ListNonAdmin(ctx, params)
	if err != nil {
		return domain.Page[*domain.User]{}, err
	}
	return domain.NewPage(users, total, params), nil
}

// GetCustomer returns a non-admin user; admins are reported as not found.
func (s *UserService) GetCustomer(ctx context.Context, uuid string) (*domain.User, error) {
	user, err := s.userRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
