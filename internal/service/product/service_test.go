package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"produtos-alert/internal/domain"
)

type stubRepo struct {
	products    []domain.Product
	listErr     error
	inserted    *domain.Product
	insertErr   error
	updated     *domain.Product
	updateErr   error
	deleteErr   error
	insertCalls int
	updateCalls int
	lastDate    string
	lastID      int64
	lastInput   domain.ProductInput
	hadDeadline bool
}

func (s *stubRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	_, s.hadDeadline = ctx.Deadline()
	return s.products, s.listErr
}

func (s *stubRepo) ListByExpiration(_ context.Context, date string) ([]domain.Product, error) {
	s.lastDate = date
	return s.products, s.listErr
}

func (s *stubRepo) Insert(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	s.insertCalls++
	s.lastInput = in
	return s.inserted, s.insertErr
}

func (s *stubRepo) UpdateByID(_ context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	s.updateCalls++
	s.lastID = id
	s.lastInput = in
	return s.updated, s.updateErr
}

func (s *stubRepo) DeleteByID(_ context.Context, id int64) error {
	s.lastID = id
	return s.deleteErr
}

func TestServiceCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		in   domain.ProductInput
		want error
	}{
		{"missing name", domain.ProductInput{ExpirationDate: "2024-01-08"}, domain.ErrInvalidProduct},
		{"blank name", domain.ProductInput{Name: "   ", ExpirationDate: "2024-01-08"}, domain.ErrInvalidProduct},
		{"missing date", domain.ProductInput{Name: "Milk"}, domain.ErrInvalidProduct},
		{"bad date", domain.ProductInput{Name: "Milk", ExpirationDate: "08/01/2024"}, domain.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := New(repo, time.Second)
			_, err := svc.Create(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if repo.insertCalls != 0 {
				t.Fatalf("expected no store call")
			}
		})
	}
}

func TestServiceCreateHappyPath(t *testing.T) {
	expected := &domain.Product{ID: 7, Name: "Milk", ExpirationDate: "2024-01-08"}
	repo := &stubRepo{inserted: expected}
	svc := New(repo, time.Second)

	got, err := svc.Create(context.Background(), domain.ProductInput{Name: "Milk", ExpirationDate: "2024-01-08"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected product %+v", got)
	}
	if repo.lastInput.Name != "Milk" || repo.lastInput.ExpirationDate != "2024-01-08" {
		t.Fatalf("unexpected input %+v", repo.lastInput)
	}
}

func TestServiceUpdateValidationSkipsStore(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, time.Second)
	_, err := svc.Update(context.Background(), 1, domain.ProductInput{Name: "Milk"})
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("expected no store call")
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := New(&stubRepo{}, time.Second)
	_, err := svc.Update(context.Background(), 999, domain.ProductInput{Name: "Milk", ExpirationDate: "2024-01-08"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceUpdatePassesStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := New(&stubRepo{updateErr: boom}, time.Second)
	_, err := svc.Update(context.Background(), 1, domain.ProductInput{Name: "Milk", ExpirationDate: "2024-01-08"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestServiceListAppliesTimeout(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{{ID: 1}}}
	if _, err := New(repo, time.Second).List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.hadDeadline {
		t.Fatalf("expected deadline on store context")
	}

	repo = &stubRepo{}
	if _, err := New(repo, 0).List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.hadDeadline {
		t.Fatalf("expected no deadline when timeout is zero")
	}
}

func TestServiceDeleteAndExpiringOn(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, time.Second)
	if err := svc.Delete(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastID != 42 {
		t.Fatalf("expected id 42, got %d", repo.lastID)
	}
	if _, err := svc.ExpiringOn(context.Background(), "2024-01-08"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastDate != "2024-01-08" {
		t.Fatalf("unexpected date %q", repo.lastDate)
	}
}
