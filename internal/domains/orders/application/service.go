package application

import (
	"context"

	addressdomain "github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases. Joins and the event publisher are
// optional collaborators; the checkout store is not.
type Service struct {
	repo      ports.Repository
	products  ports.ProductReader
	addresses ports.AddressReader
	events    ports.EventPublisher
}

type Option func(*Service)

// WithProductReader joins live products into order listings.
func WithProductReader(products ports.ProductReader) Option {
	return func(s *Service) { s.products = products }
}

// WithAddressReader joins shipping addresses into order listings.
func WithAddressReader(addresses ports.AddressReader) Option {
	return func(s *Service) { s.addresses = addresses }
}

// WithEventPublisher emits OrderPlaced notifications after checkout.
func WithEventPublisher(events ports.EventPublisher) Option {
	return func(s *Service) { s.events = events }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the checkout, expands it into one order per line item,
// and runs the atomic unit of work: insert orders, decrement stock with a
// non-negative guard, clear the cart. A failing item aborts everything;
// per-item silent skips are deliberately not supported.
func (s *Service) PlaceOrder(ctx context.Context, checkout domain.Checkout) ([]*domain.Order, error) {
	if err := checkout.Validate(); err != nil {
		return nil, mapError(err)
	}
	orders := checkout.BuildOrders()
	created, err := s.repo.Checkout(ctx, checkout.UserID, orders)
	if err != nil {
		return nil, mapError(err)
	}
	if s.events != nil && len(created) > 0 {
		s.events.OrderPlaced(ctx, created)
	}
	return created, nil
}

// ListOrders returns the user's orders joined with products and addresses.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]ports.OrderDetail, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := s.loadProducts(ctx, orders)
	if err != nil {
		return nil, err
	}
	addresses, err := s.loadAddresses(ctx, orders)
	if err != nil {
		return nil, err
	}
	details := make([]ports.OrderDetail, 0, len(orders))
	for _, order := range orders {
		details = append(details, ports.OrderDetail{
			Order:           order,
			Product:         products[order.ProductID],
			ShippingAddress: addresses[order.ShippingAddressID],
		})
	}
	return details, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func (s *Service) loadProducts(ctx context.Context, orders []*domain.Order) (map[string]*catalogdomain.Product, error) {
	byID := map[string]*catalogdomain.Product{}
	if s.products == nil || len(orders) == 0 {
		return byID, nil
	}
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}

func (s *Service) loadAddresses(ctx context.Context, orders []*domain.Order) (map[string]*addressdomain.ShippingAddress, error) {
	byID := map[string]*addressdomain.ShippingAddress{}
	if s.addresses == nil || len(orders) == 0 {
		return byID, nil
	}
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ShippingAddressID)
	}
	addresses, err := s.addresses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, address := range addresses {
		byID[address.ID] = address
	}
	return byID, nil
}

var _ ports.Service = (*Service)(nil)
