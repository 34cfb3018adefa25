package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/service"
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// Authenticator resolves bearer tokens to users. *service.TokenService
// satisfies it.
type Authenticator interface {
	ParseToken(raw string) (*service.Token, error)
	UserForToken(ctx context.Context, token *service.Token) (*domain.User, error)
}

// Auth admits requests carrying a valid session token.
func Auth(tokens Authenticator) func(http.Handler) http.Handler {
	return authenticate(tokens, false)
}

// Admin admits requests carrying a valid session token of an admin.
func Admin(tokens Authenticator) func(http.Handler) http.Handler {
	return authenticate(tokens, true)
}

func authenticate(tokens Authenticator, adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				response.Error(w, r, response.ErrTokenNotProvided)
				return
			}

			token, err := tokens.ParseToken(raw)
			if err != nil {
				response.Error(w, r, response.ErrUnauthorized)
				return
			}

			user, err := tokens.UserForToken(r.Context(), token)
			if err != nil {
				response.Error(w, r, err)
				return
			}
			if user == nil {
				response.Error(w, r, response.ErrUnauthorized)
				return
			}
			if adminOnly && !user.IsAdmin {
				response.Error(w, r, response.ErrAdminsOnly)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func TokenFromContext(ctx context.Context) (*service.Token, bool) {
	token, ok := ctx.Value(tokenKey).(*service.Token)
	return token, ok
}
