package customer

import (
	"context"
	"strings"

	"ecommerce-api/internal/domain"
	custrepo "ecommerce-api/internal/repository/customer"
)

// Service validates customer commands before they reach the store.
type Service struct {
	repo customerRepo
}

type customerRepo interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the full customer record for create and update; updates are
// whole-record replacements.
type Input struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Customer, error) {
	c, err := normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *c)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Customer, error) {
	c, err := normalize(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return s.repo.Update(ctx, *c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalize(in Input) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name", "required")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, domain.Validation("address", "required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.Validation("email", "required")
	}
	return &domain.Customer{Name: name, Address: address, Email: email}, nil
}
