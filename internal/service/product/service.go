package product

import (
	"context"
	"time"

	"produtos-alert/internal/domain"
	productrepo "produtos-alert/internal/repository/product"
)

type Service struct {
	repo    productrepo.Repository
	timeout time.Duration
}

// New returns a Service whose store calls are bounded by timeout (zero means
// only the caller's context applies).
func New(repo productrepo.Repository, timeout time.Duration) *Service {
	return &Service{repo: repo, timeout: timeout}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListAll(ctx)
}

func (s *Service) ExpiringOn(ctx context.Context, date string) ([]domain.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByExpiration(ctx, date)
}

func (s *Service) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Insert(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.UpdateByID(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Delete removes the product if present; a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
