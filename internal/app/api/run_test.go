package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
)

type stubOrchestrator struct {
	orders []*orderdomain.Order
	err    error
}

func (s *stubOrchestrator) PlaceOrder(context.Context, orderdomain.Checkout) ([]*orderdomain.Order, error) {
	return s.orders, s.err
}

type recordingInvalidator struct {
	ids []string
}

func (r *recordingInvalidator) InvalidateMany(_ context.Context, ids []string) {
	r.ids = append(r.ids, ids...)
}

func TestCacheInvalidatingCheckout_DropsTouchedProducts(t *testing.T) {
	invalidator := &recordingInvalidator{}
	orchestrator := &cacheInvalidatingCheckout{
		inner: &stubOrchestrator{orders: []*orderdomain.Order{
			{ID: "order-1", ProductID: "prod-1"},
			{ID: "order-2", ProductID: "prod-2"},
		}},
		cache: invalidator,
	}

	orders, err := orchestrator.PlaceOrder(context.Background(), orderdomain.Checkout{})

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, []string{"prod-1", "prod-2"}, invalidator.ids)
}

func TestCacheInvalidatingCheckout_SkipsInvalidationOnFailure(t *testing.T) {
	invalidator := &recordingInvalidator{}
	orchestrator := &cacheInvalidatingCheckout{
		inner: &stubOrchestrator{err: errors.New("checkout rejected")},
		cache: invalidator,
	}

	_, err := orchestrator.PlaceOrder(context.Background(), orderdomain.Checkout{})

	require.Error(t, err)
	assert.Empty(t, invalidator.ids)
}
