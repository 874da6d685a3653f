package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/helmandshop/shop-api/internal/domains/users/domain"
	"github.com/helmandshop/shop-api/internal/domains/users/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid user input")

// Service orchestrates user use cases. Activity counters are optional; a nil
// counter simply reports zero in the profile stats.
type Service struct {
	repo      ports.Repository
	cart      ports.ActivityCounter
	favorites ports.ActivityCounter
	orders    ports.ActivityCounter
}

func NewService(repo ports.Repository, cart, favorites, orders ports.ActivityCounter) *Service {
	return &Service{repo: repo, cart: cart, favorites: favorites, orders: orders}
}

func (s *Service) RegisterUser(ctx context.Context, user domain.User) (*domain.User, error) {
	validated, err := domain.NewUser(user)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, validated)
}

// GetProfile loads the user and aggregates cart, favorites, and order counts.
func (s *Service) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := &domain.Profile{User: user}
	if profile.Stats.CartCount, err = count(ctx, s.cart, id); err != nil {
		return nil, err
	}
	if profile.Stats.FavoritesCount, err = count(ctx, s.favorites, id); err != nil {
		return nil, err
	}
	if profile.Stats.OrdersCount, err = count(ctx, s.orders, id); err != nil {
		return nil, err
	}
	return profile, nil
}

func count(ctx context.Context, counter ports.ActivityCounter, userID string) (int64, error) {
	if counter == nil {
		return 0, nil
	}
	return counter.Count(ctx, userID)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingID) ||
		errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrMissingEmail) ||
		errors.Is(err, domain.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
