package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		want       domain.ListParams
		wantFields []string
	}{
		{
			name:  "defaults",
			query: "",
			want:  domain.ListParams{Page: 1, Limit: 10, SortBy: "created_at", Desc: true},
		},
		{
			name:  "explicit values",
			query: "page=3&limit=25&sort_by=title&desc=false",
			want:  domain.ListParams{Page: 3, Limit: 25, SortBy: "title", Desc: false},
		},
		{
			name:       "limit above maximum",
			query:      "limit=101",
			wantFields: []string{"limit"},
		},
		{
			name:       "page beyond offset range",
			query:      "page=9223372036854775807",
			wantFields: []string{"page"},
		},
		{
			name:       "page just past the cap",
			query:      "page=2147483648",
			wantFields: []string{"page"},
		},
		{
			name:  "page at the cap",
			query: "page=2147483647",
			want:  domain.ListParams{Page: 2147483647, Limit: 10, SortBy: "created_at", Desc: true},
		},
		{
			name:       "several bad values",
			query:      "page=0&limit=abc&desc=maybe",
			wantFields: []string{"page", "limit", "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/things?"+tt.query, nil)
			got, err := parseListParams(r, 10, "created_at", true)

			if len(tt.wantFields) > 0 {
				var apiErr *response.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
				for _, f := range tt.wantFields {
					assert.Contains(t, apiErr.Fields, f)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	type priced struct {
		Price decimal.Decimal `json:"price" validate:"required,gt=0"`
	}

	tests := []struct {
		name  string
		value any
		field string
		want  string
	}{
		{
			name:  "required uses json name",
			value: &LoginRequest{Password: "x"},
			field: "email",
			want:  "The email field is required.",
		},
		{
			name:  "email format",
			value: &LoginRequest{Email: "nope", Password: "x"},
			field: "email",
			want:  "The email field must be a valid email address.",
		},
		{
			name: "confirmation mismatch",
			value: &ResetPasswordRequest{
				Token: "t", Email: "a@b.co", Password: "password1", PasswordConfirmation: "password2",
			},
			field: "password_confirmation",
			want:  "The password confirmation field must match password.",
		},
		{
			name:  "decimal must be positive",
			value: &priced{Price: decimal.RequireFromString("-1")},
			field: "price",
			want:  "The price field must be greater than 0.",
		},
		{
			name: "price below a cent",
			value: &ProductRequest{
				CategoryUUID: "6f1c2f57-5d5e-4d0b-9d55-2b1b0f1d7c11", Title: "Bone", Description: "d",
				Price: decimal.RequireFromString("0.004"),
			},
			field: "price",
			want:  "The price field must not have more than 2 decimal places.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.value)
			var apiErr *response.APIError
			require.True(t, errors.As(err, &apiErr), "expected validation error, got %v", err)
			assert.Equal(t, tt.want, apiErr.Fields[tt.field])
		})
	}
}

func TestValidateStruct_ProductPriceScale(t *testing.T) {
	for _, price := range []string{"4.99", "4.990", "12"} {
		req := &ProductRequest{
			CategoryUUID: "6f1c2f57-5d5e-4d0b-9d55-2b1b0f1d7c11", Title: "Bone", Description: "d",
			Price: decimal.RequireFromString(price),
		}
		assert.NoError(t, validateStruct(req), price)
	}
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	var req LoginRequest
	err := decodeAndValidate(w, r, &req)

	var apiErr *response.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Fields, "body")
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
	}{
		{name: "not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "email taken", err: domain.ErrEmailTaken, wantStatus: http.StatusUnprocessableEntity, wantField: "email"},
		{name: "category in use", err: domain.ErrCategoryInUse, wantStatus: http.StatusUnprocessableEntity, wantField: "uuid"},
		{name: "wrapped sort error", err: errors.Join(errors.New("ctx"), domain.ErrInvalidSort), wantStatus: http.StatusUnprocessableEntity, wantField: "sort_by"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *response.APIError
			require.True(t, errors.As(toAPIError(tt.err, "Thing"), &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			if tt.wantField != "" {
				assert.Contains(t, apiErr.Fields, tt.wantField)
			}
		})
	}

	plain := errors.New("database exploded")
	assert.Same(t, plain, toAPIError(plain, "Thing"))
}
