package application

import (
	"context"

	"github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	validated, err := domain.NewProduct(product)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, validated)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if patch.PriceInCents != nil && *patch.PriceInCents < 0 {
		return nil, mapError(domain.ErrInvalidPrice)
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		return nil, mapError(domain.ErrInvalidStock)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
