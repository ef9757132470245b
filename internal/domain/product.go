package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date form expiration dates are stored and compared in.
const DateLayout = "2006-01-02"

type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ExpirationDate string    `json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProductInput is the client-writable part of a Product.
type ProductInput struct {
	Name           string `json:"name" csv:"name" binding:"required"`
	ExpirationDate string `json:"expiration_date" csv:"expiration_date" binding:"required,datetime=2006-01-02"`
}

// Validate reports ErrInvalidProduct when a required field is empty and
// ErrInvalidDate when the expiration date is not YYYY-MM-DD.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.ExpirationDate) == "" {
		return ErrInvalidProduct
	}
	if _, err := time.Parse(DateLayout, in.ExpirationDate); err != nil {
		return ErrInvalidDate
	}
	return nil
}
