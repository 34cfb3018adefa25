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
)

func newAuthService(t *testing.T, testDB *testutil.TestDB) (*service.AuthService, *service.TokenService) {
	t.Helper()
	repos := gormrepo.NewRepositories(testDB.DB)
	tokens := testutil.NewTokenService(t, repos)
	return service.NewAuthService(repos.User, repos.PasswordReset, tokens), tokens
}

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, tokens := newAuthService(t, testDB)
	ctx := context.Background()

	input := service.RegisterInput{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Password:    "password123",
		Address:     "1 Main St",
		PhoneNumber: "555-0101",
	}

	tests := []struct {
		name    string
		input   service.RegisterInput
		wantErr error
	}{
		{
			name:  "successful registration",
			input: input,
		},
		{
			name:    "duplicate email",
			input:   input,
			wantErr: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Register(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.False(t, user.IsAdmin)
			assert.NotEqual(t, tt.input.Password, user.Password)

			got, err := tokens.GetUserFromToken(ctx, token)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, user.UUID, got.UUID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	ctx := context.Background()

	customer, password := testutil.NewUserBuilder().Build(t, testDB.DB)
	admin, adminPassword := testutil.NewUserBuilder().AsAdmin().Build(t, testDB.DB)

	tests := []struct {
		name      string
		email     string
		password  string
		adminOnly bool
		wantErr   error
	}{
		{name: "customer login", email: customer.Email, password: password},
		{name: "admin through customer login", email: admin.Email, password: adminPassword},
		{name: "admin login", email: admin.Email, password: adminPassword, adminOnly: true},
		{name: "wrong password", email: customer.Email, password: "wrong", wantErr: service.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: password, wantErr: service.ErrInvalidCredentials},
		{name: "customer through admin login", email: customer.Email, password: password, adminOnly: true, wantErr: service.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := authService.Login(ctx, tt.email, tt.password, tt.adminOnly)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}

	var got domain.User
	require.NoError(t, testDB.DB.First(&got, customer.ID).Error)
	assert.NotNil(t, got.LastLoginAt)
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, tokens := newAuthService(t, testDB)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)
	raw, err := authService.Login(ctx, user.Email, password, false)
	require.NoError(t, err)

	parsed, err := tokens.ParseToken(raw)
	require.NoError(t, err)
	require.NoError(t, authService.Logout(ctx, parsed))

	got, err := tokens.GetUserFromToken(ctx, raw)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthService_PasswordReset(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, tokens := newAuthService(t, testDB)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().WithEmail("forgetful@example.com").Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	session, err := authService.Login(ctx, user.Email, password, false)
	require.NoError(t, err)

	_, err = authService.ForgotPassword(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stale, err := authService.ForgotPassword(ctx, user.Email)
	require.NoError(t, err)
	resetToken, err := authService.ForgotPassword(ctx, user.Email)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   service.ResetPasswordInput
		wantErr error
	}{
		{
			name:    "superseded token",
			input:   service.ResetPasswordInput{Token: stale, Email: user.Email, Password: "newpassword1"},
			wantErr: service.ErrResetTokenNotFound,
		},
		{
			name:    "token for another email",
			input:   service.ResetPasswordInput{Token: resetToken, Email: other.Email, Password: "newpassword1"},
			wantErr: service.ErrResetTokenNotFound,
		},
		{
			name:  "valid reset",
			input: service.ResetPasswordInput{Token: resetToken, Email: user.Email, Password: "newpassword1"},
		},
		{
			name:    "token cannot be reused",
			input:   service.ResetPasswordInput{Token: resetToken, Email: user.Email, Password: "another1"},
			wantErr: service.ErrResetTokenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authService.ResetPassword(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	got, err := tokens.GetUserFromToken(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, got, "reset should revoke existing sessions")

	_, err = authService.Login(ctx, user.Email, password, false)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authService.Login(ctx, user.Email, "newpassword1", false)
	assert.NoError(t, err)
}
