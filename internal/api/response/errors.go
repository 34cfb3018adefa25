package response

import (
	"fmt"
	"net/http"
)

// APIError is an error that maps directly onto an envelope and status code.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrTokenNotProvided = &APIError{StatusCode: http.StatusUnauthorized, Message: "Token not provided"}
	ErrUnauthorized     = &APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrAdminsOnly       = &APIError{StatusCode: http.StatusForbidden, Message: "Unauthorized. Admins only."}
	ErrRateLimited      = &APIError{StatusCode: http.StatusTooManyRequests, Message: "Too Many Attempts."}
	ErrInternal         = &APIError{StatusCode: http.StatusInternalServerError, Message: "Something went wrong"}
)

func NotFound(resource string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
	}
}

// Validation reports field errors as a 422.
func Validation(fields map[string]string) *APIError {
	return &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Failed Validation",
		Fields:     fields,
	}
}

func FieldError(field, message string) *APIError {
	return Validation(map[string]string{field: message})
}
