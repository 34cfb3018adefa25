package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxBodyBytes = 1 << 20
	maxPageLimit = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterStructValidation(validateProductPrice, ProductRequest{})
	return v
}

// Prices are stored with two decimal places; anything finer would be
// rounded on save, possibly down to zero.
func validateProductPrice(sl validator.StructLevel) {
	req := sl.Current().Interface().(ProductRequest)
	if !req.Price.Equal(req.Price.Round(2)) {
		sl.ReportError(req.Price, "price", "Price", "decimals", "2")
	}
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// The returned error is always an *response.APIError.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return response.FieldError("body", "The request body must be a valid JSON object.")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return response.Validation(FormatValidationErrors(verrs))
	}
	return err
}

// FormatValidationErrors turns validator errors into field -> message pairs.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		label := strings.ReplaceAll(field, "_", " ")
		switch err.Tag() {
		case "required", "required_with":
			messages[field] = fmt.Sprintf("The %s field is required.", label)
		case "email":
			messages[field] = fmt.Sprintf("The %s field must be a valid email address.", label)
		case "min":
			messages[field] = fmt.Sprintf("The %s field must be at least %s characters.", label, err.Param())
		case "max":
			messages[field] = fmt.Sprintf("The %s field must not be greater than %s characters.", label, err.Param())
		case "eqfield":
			messages[field] = fmt.Sprintf("The %s field must match %s.", label, toSnake(err.Param()))
		case "gt":
			messages[field] = fmt.Sprintf("The %s field must be greater than %s.", label, err.Param())
		case "decimals":
			messages[field] = fmt.Sprintf("The %s field must not have more than %s decimal places.", label, err.Param())
		case "uuid":
			messages[field] = fmt.Sprintf("The %s field must be a valid UUID.", label)
		default:
			messages[field] = fmt.Sprintf("The %s field is invalid.", label)
		}
	}
	return messages
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseListParams reads page, limit, sort_by and desc from the query string.
func parseListParams(r *http.Request, defaultLimit int, defaultSort string, defaultDesc bool) (domain.ListParams, error) {
	q := r.URL.Query()
	params := domain.ListParams{
		Page:   1,
		Limit:  defaultLimit,
		SortBy: defaultSort,
		Desc:   defaultDesc,
	}
	fields := map[string]string{}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > domain.MaxPage {
			fields["page"] = fmt.Sprintf("The page field must be between 1 and %d.", domain.MaxPage)
		}
		params.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageLimit {
			fields["limit"] = fmt.Sprintf("The limit field must be between 1 and %d.", maxPageLimit)
		}
		params.Limit = n
	}
	if v := q.Get("sort_by"); v != "" {
		params.SortBy = v
	}
	if v := q.Get("desc"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fields["desc"] = "The desc field must be true or false."
		}
		params.Desc = b
	}

	if len(fields) > 0 {
		return domain.ListParams{}, response.Validation(fields)
	}
	return params, nil
}

// writeError maps service and domain errors onto API errors. resource names
// the entity used in 404 messages.
func writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	response.Error(w, r, toAPIError(err, resource))
}
