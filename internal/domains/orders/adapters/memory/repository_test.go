package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	cartmemory "github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	cartdomain "github.com/helmandshop/shop-api/internal/domains/cart/domain"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

func seedCatalog(t *testing.T, catalog *catalogmemory.Repository, id string, stock int64) {
	t.Helper()
	_, err := catalog.Save(context.Background(), &catalogdomain.Product{
		ID:            id,
		UserID:        "seller-1",
		Name:          "Product " + id,
		ImageURL:      "https://img.example/" + id,
		PriceInCents:  500,
		StockQuantity: stock,
	})
	require.NoError(t, err)
}

func ordersFor(userID, productID string, quantity int64) []*domain.Order {
	checkout := domain.Checkout{
		UserID:            userID,
		Items:             []domain.LineItem{{ProductID: productID, Quantity: quantity, Price: 5}},
		ShippingAddressID: "addr-1",
		TotalAmount:       5,
	}
	return checkout.BuildOrders()
}

func TestCheckout_ConcurrentCheckoutsNeverLoseAnUpdate(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartmemory.NewRepository()
	repo := NewRepository(catalog, cart)
	seedCatalog(t, catalog, "prod-1", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Checkout(context.Background(), "user-1", ordersFor("user-1", "prod-1", 4))
		}(i)
	}
	wg.Wait()

	product, err := catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ports.ErrInsufficientStock)
		}
	}
	require.Equal(t, int64(10-4*succeeded), product.StockQuantity)
	require.GreaterOrEqual(t, product.StockQuantity, int64(0))
}

func TestCheckout_OversellFails(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartmemory.NewRepository()
	repo := NewRepository(catalog, cart)
	seedCatalog(t, catalog, "prod-1", 3)

	created, err := repo.Checkout(context.Background(), "user-1", ordersFor("user-1", "prod-1", 4))
	require.Nil(t, created)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	product, err := catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, int64(3), product.StockQuantity)
}

func TestCheckout_UnknownProductRollsBackEarlierDecrements(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartmemory.NewRepository()
	repo := NewRepository(catalog, cart)
	seedCatalog(t, catalog, "prod-1", 10)

	orders := append(ordersFor("user-1", "prod-1", 2), ordersFor("user-1", "ghost", 1)...)
	_, err := repo.Checkout(context.Background(), "user-1", orders)
	require.ErrorIs(t, err, ports.ErrProductNotFound)

	product, err := catalog.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, int64(10), product.StockQuantity)
}

func TestCheckout_EmptyOrderListLeavesCartUntouched(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartmemory.NewRepository()
	repo := NewRepository(catalog, cart)
	seedCatalog(t, catalog, "prod-1", 10)

	_, err := cart.Save(context.Background(), &cartdomain.CartItem{
		ID:        "item-1",
		UserID:    "user-1",
		ProductID: "prod-1",
		Quantity:  2,
	})
	require.NoError(t, err)

	created, err := repo.Checkout(context.Background(), "user-1", nil)
	require.NoError(t, err)
	require.Nil(t, created)

	items, err := cart.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewRepository(catalogmemory.NewRepository(), cartmemory.NewRepository())
	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
