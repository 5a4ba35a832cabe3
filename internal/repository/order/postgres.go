package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"ecommerce-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderQuery = `
SELECT o.id, o.customer_id, o.created_at,
       COALESCE(array_agg(op.product_id ORDER BY op.added_at, op.product_id) FILTER (WHERE op.product_id IS NOT NULL), '{}')
FROM orders o
LEFT JOIN order_products op ON op.order_id = o.id
`

func (r *postgresRepo) Create(ctx context.Context, customerID int64) (*domain.Order, error) {
	const q = `
INSERT INTO orders (customer_id)
VALUES ($1)
RETURNING id, customer_id, created_at
`
	var o domain.Order
	if err := r.pool.QueryRow(ctx, q, customerID).Scan(&o.ID, &o.CustomerID, &o.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Unknown customer.
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: create customer_id=%d error=%v", customerID, err)
		return nil, wrapErr(err)
	}
	o.ProductIDs = []int64{}
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getOrder(ctx, r.pool, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	// Join rows go with the order via ON DELETE CASCADE.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: delete id=%d error=%v", id, err)
		return wrapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	q := orderQuery + `
WHERE o.customer_id = $1
GROUP BY o.id
ORDER BY o.id ASC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer_id=%d error=%v", customerID, err)
		return nil, wrapErr(err)
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CreatedAt, &o.ProductIDs); err != nil {
			return nil, wrapErr(err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows customer_id=%d error=%v", customerID, err)
		return nil, wrapErr(err)
	}
	return result, nil
}

// AddProduct links a product to an order inside one transaction. Re-adding an
// already linked product is a no-op: the join table's composite key plus
// ON CONFLICT DO NOTHING keeps the set duplicate-free.
func (r *postgresRepo) AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, wrapErr(err)
	}
	defer tx.Rollback(ctx)

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO order_products (order_id, product_id)
VALUES ($1, $2)
ON CONFLICT (order_id, product_id) DO NOTHING
`, orderID, productID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Unknown product.
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: add product order_id=%d product_id=%d error=%v", orderID, productID, err)
		return nil, wrapErr(err)
	}

	// Reload inside the transaction so the returned state is exactly what
	// this mutation produced, not whatever lands after commit.
	o, err := r.getOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapErr(err)
	}
	return o, nil
}

// RemoveProduct unlinks a product from an order. Removing a product that is
// not linked is a no-op success, but both ids must exist.
func (r *postgresRepo) RemoveProduct(ctx context.Context, orderID, productID int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	if err := lockOrder(ctx, tx, orderID); err != nil {
		return err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return wrapErr(err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM order_products
WHERE order_id = $1 AND product_id = $2
`, orderID, productID); err != nil {
		r.logger.Printf("order repo: remove product order_id=%d product_id=%d error=%v", orderID, productID, err)
		return wrapErr(err)
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ListProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return nil, wrapErr(err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT p.id, p.name, p.price, p.created_at
FROM products p
JOIN order_products op ON op.product_id = p.id
WHERE op.order_id = $1
ORDER BY op.added_at ASC, op.product_id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		r.logger.Printf("order repo: list products order_id=%d error=%v", orderID, err)
		return nil, wrapErr(err)
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt); err != nil {
			return nil, wrapErr(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return result, nil
}

// queryRower is satisfied by both the pool and a transaction, so order loads
// can run inside an open tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepo) getOrder(ctx context.Context, q queryRower, id int64) (*domain.Order, error) {
	query := orderQuery + `
WHERE o.id = $1
GROUP BY o.id
`
	return r.scanOrder(q.QueryRow(ctx, query, id))
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CreatedAt, &o.ProductIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: scan error=%v", err)
		return nil, wrapErr(err)
	}
	if o.ProductIDs == nil {
		o.ProductIDs = []int64{}
	}
	return &o, nil
}

// lockOrder pins the order row for the rest of the transaction so concurrent
// association mutations on the same order serialize.
func lockOrder(ctx context.Context, tx pgx.Tx, orderID int64) error {
	var id int64
	if err := tx.QueryRow(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr(err)
	}
	return nil
}

func wrapErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}
