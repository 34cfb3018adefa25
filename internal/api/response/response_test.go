package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, float64(1), body["success"])
	assert.Equal(t, map[string]any{"token": "abc"}, body["data"])
	assert.Equal(t, "", body["error"])
	assert.Equal(t, map[string]any{}, body["errors"])
	assert.Equal(t, map[string]any{}, body["extra"])
}

func TestOK_NilData(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, nil)
	assert.Equal(t, map[string]any{}, decode(t, rec)["data"])
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantFields map[string]any
	}{
		{
			name:       "unauthorized",
			err:        ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
			wantFields: map[string]any{},
		},
		{
			name:       "admins only",
			err:        ErrAdminsOnly,
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized. Admins only.",
			wantFields: map[string]any{},
		},
		{
			name:       "not found",
			err:        NotFound("Category"),
			wantStatus: http.StatusNotFound,
			wantError:  "Category not found",
			wantFields: map[string]any{},
		},
		{
			name:       "validation",
			err:        FieldError("slug", "The slug has already been taken."),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Failed Validation",
			wantFields: map[string]any{"slug": "The slug has already been taken."},
		},
		{
			name:       "internal details are hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Something went wrong",
			wantFields: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)

			Error(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, float64(0), body["success"])
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, tt.wantFields, body["errors"])
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
