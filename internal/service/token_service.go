package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenRevoked   = errors.New("token revoked")
)

// Claims is the payload of a session token.
type Claims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

// Token is a parsed but not necessarily valid session token.
type Token struct {
	Raw    string
	Claims *Claims
}

type TokenOptions struct {
	Title        *string
	Restrictions datatypes.JSON
	Permissions  datatypes.JSON
}

type TokenServiceOption func(*TokenService)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *TokenService) {
		s.now = now
	}
}

type TokenService struct {
	keys      *KeyPair
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(keys *KeyPair, tokenRepo repository.TokenRepository, userRepo repository.UserRepository, issuer string, ttl time.Duration, opts ...TokenServiceOption) *TokenService {
	s := &TokenService{
		keys:      keys,
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateToken signs a session token for user and records it in the
// revocation list.
func (s *TokenService) GenerateToken(ctx context.Context, user *domain.User, opts TokenOptions) (string, error) {
	signed, claims, err := s.build(user)
	if err != nil {
		return "", err
	}

	record := &domain.JwtToken{
		UserID:       user.ID,
		UniqueID:     claims.ID,
		TokenTitle:   opts.Title,
		Restrictions: opts.Restrictions,
		Permissions:  opts.Permissions,
		ExpiresAt:    claims.ExpiresAt.Time,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return signed, nil
}

// GenerateTokenForPasswordReset signs a token that is never recorded and so
// can never authenticate a request.
func (s *TokenService) GenerateTokenForPasswordReset(user *domain.User) (string, error) {
	signed, _, err := s.build(user)
	return signed, err
}

// ParseToken decodes a token without checking its signature or time claims.
func (s *TokenService) ParseToken(raw string) (*Token, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return &Token{Raw: raw, Claims: claims}, nil
}

// ValidateToken returns nil only for a correctly signed, unexpired token that
// still has a revocation record owned by the user it names.
func (s *TokenService) ValidateToken(ctx context.Context, token *Token) error {
	_, err := s.validate(ctx, token)
	return err
}

// GetUserFromToken resolves the user behind raw. Invalid, revoked or
// expired tokens and deleted users yield a nil user and a nil error; only
// storage failures are returned.
func (s *TokenService) GetUserFromToken(ctx context.Context, raw string) (*domain.User, error) {
	token, err := s.ParseToken(raw)
	if err != nil {
		return nil, nil
	}
	return s.UserForToken(ctx, token)
}

// UserForToken is GetUserFromToken for an already parsed token.
func (s *TokenService) UserForToken(ctx context.Context, token *Token) (*domain.User, error) {
	user, err := s.validate(ctx, token)
	switch {
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenRevoked):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return user, nil
}

// DeleteToken revokes every token issued to the user named by token.
func (s *TokenService) DeleteToken(ctx context.Context, token *Token) error {
	if token == nil || token.Claims == nil || token.Claims.UserUUID == "" {
		return ErrInvalidToken
	}
	_, err := s.tokenRepo.DeleteByUserUUID(ctx, token.Claims.UserUUID)
	return err
}

// PruneExpired removes revocation records whose tokens can no longer
// validate.
func (s *TokenService) PruneExpired(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, s.now())
}

func (s *TokenService) build(user *domain.User) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserUUID: user.UUID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        ulid.Make().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.keys.Private)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

func (s *TokenService) validate(ctx context.Context, token *Token) (*domain.User, error) {
	if token == nil {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token.Raw, &Claims{},
		func(*jwt.Token) (any, error) { return s.keys.Public, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ID == "" || claims.UserUUID == "" {
		return nil, ErrInvalidToken
	}

	record, err := s.tokenRepo.GetByUniqueID(ctx, claims.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrTokenRevoked
	}
	if err != nil {
		return nil, err
	}
	if !record.ExpiresAt.After(s.now()) {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrTokenRevoked
	}
	if err != nil {
		return nil, err
	}
	if user.UUID != claims.UserUUID {
		return nil, ErrInvalidToken
	}

	if err := s.tokenRepo.Touch(ctx, record.ID, s.now()); err != nil {
		slog.Warn("failed to touch token", "op", "token.Validate", "error", err)
	}
	return user, nil
}
