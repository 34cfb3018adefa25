package domain

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrEmailTaken      = errors.New("email has already been taken")
	ErrSlugTaken       = errors.New("slug has already been taken")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrInvalidSort     = errors.New("invalid sort column")
	ErrCategoryInUse   = errors.New("category still has products")
)
