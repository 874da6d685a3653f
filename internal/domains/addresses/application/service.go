package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	"github.com/helmandshop/shop-api/internal/domains/addresses/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid shipping address input")

// Service orchestrates shipping address use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddAddress(ctx context.Context, address domain.ShippingAddress) (*domain.ShippingAddress, error) {
	validated, err := domain.NewShippingAddress(address)
	if err != nil {
		if errors.Is(err, domain.ErrIncomplete) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}
	return s.repo.Save(ctx, validated)
}

func (s *Service) ListAddresses(ctx context.Context, userID string) ([]*domain.ShippingAddress, error) {
	return s.repo.ListByUser(ctx, userID)
}

var _ ports.Service = (*Service)(nil)
