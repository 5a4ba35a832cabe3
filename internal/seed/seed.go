package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name  string
	Price float64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureCustomer(ctx, pool, "Demo Customer", "1 Demo Street", "demo@example.com"); err != nil {
		return fmt.Errorf("ensure customer: %w", err)
	}

	products := []productSeed{
		{Name: "Demo T-Shirt", Price: 19.99},
		{Name: "Demo Mug", Price: 12.99},
		{Name: "Demo Sticker Pack", Price: 4.50},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureCustomer(ctx context.Context, pool *pgxpool.Pool, name, address, email string) error {
	const q = `
INSERT INTO customers (name, address, email)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address
`
	_, err := pool.Exec(ctx, q, name, address, email)
	return err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, price)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Price)
	return err
}
