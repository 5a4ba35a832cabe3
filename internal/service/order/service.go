package order

import (
	"context"

	"ecommerce-api/internal/domain"
	orderrepo "ecommerce-api/internal/repository/order"
)

// Service exposes the order lifecycle and the order-product association.
// Repository errors pass through untouched; the HTTP layer maps them.
type Service struct {
	repo orderRepo
}

type orderRepo interface {
	Create(ctx context.Context, customerID int64) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error)
	RemoveProduct(ctx context.Context, orderID, productID int64) error
	ListProducts(ctx context.Context, orderID int64) ([]domain.Product, error)
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	CustomerID int64 `json:"customerId" binding:"required"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if in.CustomerID == 0 {
		return nil, domain.Validation("customerId", "required")
	}
	if in.CustomerID < 0 {
		return nil, domain.Validation("customerId", "must be positive")
	}
	return s.repo.Create(ctx, in.CustomerID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ListByCustomer returns the customer's orders, oldest first. An unknown
// customer yields an empty list rather than an error.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error) {
	return s.repo.AddProduct(ctx, orderID, productID)
}

func (s *Service) RemoveProduct(ctx context.Context, orderID, productID int64) error {
	return s.repo.RemoveProduct(ctx, orderID, productID)
}

func (s *Service) Products(ctx context.Context, orderID int64) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, orderID)
}
