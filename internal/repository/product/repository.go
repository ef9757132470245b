package product

import (
	"context"

	"produtos-alert/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListByExpiration(ctx context.Context, date string) ([]domain.Product, error)
	Insert(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateByID(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteByID(ctx context.Context, id int64) error
}
