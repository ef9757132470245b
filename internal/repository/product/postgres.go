package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"produtos-alert/internal/domain"
	"produtos-alert/internal/logging"
)

const columns = `id, name, to_char(expiration_date, 'YYYY-MM-DD'), created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + columns + ` FROM produtos ORDER BY id`
	result, err := r.query(ctx, q)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) ListByExpiration(ctx context.Context, date string) ([]domain.Product, error) {
	const q = `SELECT ` + columns + ` FROM produtos WHERE expiration_date = $1::date ORDER BY id`
	result, err := r.query(ctx, q, date)
	if err != nil {
		r.logger.Error("product repo: list by expiration", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list by expiration", zap.String("date", date), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) Insert(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	const q = `
INSERT INTO produtos (name, expiration_date)
VALUES ($1, $2::date)
RETURNING ` + columns

	p, err := scanProduct(r.pool.QueryRow(ctx, q, in.Name, in.ExpirationDate))
	if err != nil {
		r.logger.Error("product repo: insert", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: inserted", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (r *postgresRepo) UpdateByID(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	const q = `
UPDATE produtos
SET name = $2, expiration_date = $3::date
WHERE id = $1
RETURNING ` + columns

	p, err := scanProduct(r.pool.QueryRow(ctx, q, id, in.Name, in.ExpirationDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Info("product repo: update not found", zap.Int64("id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: update", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: updated", zap.Int64("id", id))
	return p, nil
}

func (r *postgresRepo) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("product repo: delete", zap.Int64("id", id), zap.Error(err))
		return err
	}
	r.logger.Info("product repo: deleted", zap.Int64("id", id), zap.Int64("rows", tag.RowsAffected()))
	return nil
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.ExpirationDate, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
