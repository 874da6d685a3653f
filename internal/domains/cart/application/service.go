package application

import (
	"context"
	"errors"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/ports"
)

// Service orchestrates cart use cases.
type Service struct {
	repo     ports.Repository
	products ports.ProductReader
}

func NewService(repo ports.Repository, products ports.ProductReader) *Service {
	return &Service{repo: repo, products: products}
}

// GetCart returns the user's cart joined with live product data. Items whose
// product no longer exists keep their stored snapshot.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.CartSummary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byProduct, err := s.loadProducts(ctx, items)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.CartLine{Item: item, Product: byProduct[item.ProductID]})
	}
	return domain.Summarize(lines), nil
}

// AddItem puts a product in the cart. Adding a product that is already carted
// merges the quantities and refreshes the stored snapshot.
func (s *Service) AddItem(ctx context.Context, userID string, snapshot catalogdomain.ProductSnapshot, quantity int64) (*domain.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	item, err := domain.NewCartItem(userID, snapshot, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByUserAndProduct(ctx, userID, snapshot.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return s.repo.Save(ctx, item)
		}
		return nil, err
	}
	existing.Quantity += quantity
	existing.ProductData = snapshot
	return s.repo.Update(ctx, existing)
}

// UpdateQuantity sets the carted quantity; zero or less removes the row.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int64) (*domain.CartItem, error) {
	if quantity <= 0 {
		if err := s.repo.Remove(ctx, userID, productID); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		return nil, nil
	}
	existing, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	existing.Quantity = quantity
	return s.repo.Update(ctx, existing)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	err := s.repo.Remove(ctx, userID, productID)
	if errors.Is(err, ports.ErrNotFound) {
		// removal is idempotent at the API surface
		return nil
	}
	return err
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.ClearUser(ctx, userID)
}

func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func (s *Service) loadProducts(ctx context.Context, items []*domain.CartItem) (map[string]*catalogdomain.Product, error) {
	if len(items) == 0 || s.products == nil {
		return nil, nil
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]*catalogdomain.Product, len(products))
	for _, product := range products {
		byProduct[product.ID] = product
	}
	return byProduct, nil
}

var _ ports.Service = (*Service)(nil)
