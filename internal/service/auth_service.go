package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenNotFound = errors.New("reset token not found")
)

type AuthService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	tokens    *TokenService
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, resetRepo repository.PasswordResetRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokens:    tokens,
		now:       time.Now,
	}
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Avatar      *string
	Address     string
	PhoneNumber string
	IsMarketing bool
}

type ResetPasswordInput struct {
	Token    string
	Email    string
	Password string
}

// Register creates a regular user and signs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	user, err := s.createUser(ctx, input, false)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(ctx, user, TokenOptions{})
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateAdmin creates an administrator account without signing it in.
func (s *AuthService) CreateAdmin(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.createUser(ctx, input, true)
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput, admin bool) (*domain.User, error) {
	taken, err := s.userRepo.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UUID:        uuid.NewString(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		IsAdmin:     admin,
		Email:       input.Email,
		Password:    string(hashed),
		Avatar:      input.Avatar,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		IsMarketing: input.IsMarketing,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a session token. With adminOnly set,
// non-admin accounts are rejected exactly like a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string, adminOnly bool) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if adminOnly && !user.IsAdmin {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user, TokenOptions{})
	if err != nil {
		return "", err
	}
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token *Token) error {
	return s.tokens.DeleteToken(ctx, token)
}

// ForgotPassword replaces the user's reset record and returns the new reset
// token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateTokenForPasswordReset(user)
	if err != nil {
		return "", err
	}

	reset := &domain.PasswordReset{
		Email:     user.Email,
		Token:     token,
		CreatedAt: s.now(),
	}
	if err := s.resetRepo.Replace(ctx, reset); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token. The token must have been issued for
// input.Email; on success every session of the user is revoked.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	reset, err := s.resetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrResetTokenNotFound
		}
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if reset.Email != user.Email {
		return ErrResetTokenNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.resetRepo.Consume(ctx, reset.Email, user.ID, string(hashed))
}
