package order

import (
	"context"

	"ecommerce-api/internal/domain"
)

// Repository persists orders and the order-product association set.
type Repository interface {
	Create(ctx context.Context, customerID int64) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error)
	RemoveProduct(ctx context.Context, orderID, productID int64) error
	ListProducts(ctx context.Context, orderID int64) ([]domain.Product, error)
}
