package product

import (
	"context"
	"strings"

	"ecommerce-api/internal/domain"
	productrepo "ecommerce-api/internal/repository/product"
)

// Service validates product commands before they reach the store.
type Service struct {
	repo productRepo
}

type productRepo interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Product, error) {
	p, err := normalize(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, *p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalize(in Input) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name", "required")
	}
	if in.Price == nil {
		return nil, domain.Validation("price", "required")
	}
	if *in.Price < 0 {
		return nil, domain.Validation("price", "must not be negative")
	}
	return &domain.Product{Name: name, Price: *in.Price}, nil
}
