package handlers

import (
	"errors"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/service"
)

func toAPIError(err error, resource string) error {
	var apiErr *response.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(resource)
	case errors.Is(err, domain.ErrEmailTaken):
		return response.FieldError("email", "The email has already been taken.")
	case errors.Is(err, domain.ErrSlugTaken):
		return response.FieldError("slug", "The slug has already been taken.")
	case errors.Is(err, domain.ErrUnknownCategory):
		return response.FieldError("category_uuid", "The selected category uuid is invalid.")
	case errors.Is(err, domain.ErrInvalidSort):
		return response.FieldError("sort_by", "The selected sort by is invalid.")
	case errors.Is(err, domain.ErrCategoryInUse):
		return response.FieldError("uuid", "The category still has products.")
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.ErrUnauthorized
	case errors.Is(err, service.ErrResetTokenNotFound):
		return response.NotFound("Token")
	case errors.Is(err, service.ErrInvalidMetadata):
		return response.FieldError("metadata", "The metadata field must be a JSON object.")
	case errors.Is(err, service.ErrNotAnImage):
		return response.FieldError("file", "The file field must be an image.")
	}
	return err
}
