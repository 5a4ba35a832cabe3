package customer

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

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, address, email)
VALUES ($1, $2, $3)
RETURNING id, name, address, email, created_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.Name, c.Address, c.Email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
SELECT id, name, address, email, created_at
FROM customers
WHERE id = $1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT id, name, address, email, created_at
FROM customers
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("customer repo: list error=%v", err)
		return nil, wrapErr(err)
	}
	defer rows.Close()

	result := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.CreatedAt); err != nil {
			return nil, wrapErr(err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("customer repo: list rows error=%v", err)
		return nil, wrapErr(err)
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET name = $2, address = $3, email = $4
WHERE id = $1
RETURNING id, name, address, email, created_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Address, c.Email))
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Orders still reference this customer.
			return domain.ErrConflict
		}
		r.logger.Printf("customer repo: delete id=%d error=%v", id, err)
		return wrapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.Validation("email", "already in use")
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, wrapErr(err)
	}
	return &c, nil
}

func wrapErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}
