package application

import (
	"context"
	"errors"
	"fmt"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/favorites/domain"
	"github.com/helmandshop/shop-api/internal/domains/favorites/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid favorite input")

// Service orchestrates favorites use cases.
type Service struct {
	repo     ports.Repository
	products ports.ProductReader
}

func NewService(repo ports.Repository, products ports.ProductReader) *Service {
	return &Service{repo: repo, products: products}
}

// ListFavorites returns the user's favorites joined with live products;
// vanished products keep their snapshot.
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteLine, error) {
	favorites, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byProduct := map[string]*catalogdomain.Product{}
	if len(favorites) > 0 && s.products != nil {
		ids := make([]string, 0, len(favorites))
		for _, fav := range favorites {
			ids = append(ids, fav.ProductID)
		}
		products, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, product := range products {
			byProduct[product.ID] = product
		}
	}
	lines := make([]domain.FavoriteLine, 0, len(favorites))
	for _, fav := range favorites {
		lines = append(lines, domain.FavoriteLine{Favorite: fav, Product: byProduct[fav.ProductID]})
	}
	return lines, nil
}

// AddFavorite stores the favorite, returning the existing row when the
// product was already favorited.
func (s *Service) AddFavorite(ctx context.Context, userID string, snapshot catalogdomain.ProductSnapshot) (*domain.Favorite, error) {
	fav, err := domain.NewFavorite(userID, snapshot)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByUserAndProduct(ctx, userID, snapshot.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, fav)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, productID string) error {
	err := s.repo.Remove(ctx, userID, productID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	_, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingUser) || errors.Is(err, domain.ErrIncompleteProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
