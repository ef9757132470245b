package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"produtos-alert/internal/domain"
)

type productSeed struct {
	Name      string
	DaysAhead int
}

var demoProducts = []productSeed{
	{Name: "Demo Milk", DaysAhead: 7},
	{Name: "Demo Yogurt", DaysAhead: 7},
	{Name: "Demo Bread", DaysAhead: 2},
	{Name: "Demo Cheese", DaysAhead: 30},
}

// Apply inserts demo products relative to today so a scan right after seeding
// has something to report. Products already present by name are left alone.
func Apply(ctx context.Context, pool *pgxpool.Pool, today time.Time) error {
	for _, p := range demoProducts {
		date := today.AddDate(0, 0, p.DaysAhead).Format(domain.DateLayout)
		if err := insertProduct(ctx, pool, p.Name, date); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, name, date string) error {
	const q = `
INSERT INTO produtos (name, expiration_date)
SELECT $1, $2::date
WHERE NOT EXISTS (SELECT 1 FROM produtos WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, name, date)
	return err
}
