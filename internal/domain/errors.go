package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidProduct is returned when name or expiration_date is missing.
	ErrInvalidProduct = errors.New("name and expiration_date are required")
	ErrInvalidDate    = errors.New("expiration_date must be a YYYY-MM-DD date")
)
