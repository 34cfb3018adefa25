package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response body with a typed data payload
type Envelope[T any] struct {
	Success int               `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
	Extra   map[string]any    `json:"extra"`
}

// Page mirrors a paginated listing
type Page[T any] struct {
	CurrentPage int   `json:"current_page"`
	Data        []T   `json:"data"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertSuccess verifies a 200 envelope and decodes its data into v
func AssertSuccess[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var env Envelope[T]
	AssertJSONResponse(t, resp, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status code, error: %q %v", env.Error, env.Errors)
	assert.Equal(t, 1, env.Success)
	return env.Data
}

// AssertErrorResponse verifies a failure envelope with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) Envelope[any] {
	t.Helper()

	var env Envelope[any]
	AssertJSONResponse(t, resp, &env)

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")
	assert.Equal(t, 0, env.Success)
	assert.Equal(t, expectedMessage, env.Error, "error message mismatch")
	return env
}

// AssertValidationError verifies a 422 naming field among its errors
func AssertValidationError(t *testing.T, resp *http.Response, field string) {
	t.Helper()

	env := AssertErrorResponse(t, resp, http.StatusUnprocessableEntity, "Failed Validation")
	assert.Contains(t, env.Errors, field, "expected a validation error for %s", field)
}
