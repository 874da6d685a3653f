package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	catalogports "github.com/helmandshop/shop-api/internal/domains/catalog/ports"
)

func patchPrice(priceInCents int64) catalogports.ProductPatch {
	return catalogports.ProductPatch{PriceInCents: &priceInCents}
}

func newCartFixture(t *testing.T) (*Service, *catalogmemory.Repository) {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	return NewService(memory.NewRepository(), catalog), catalog
}

func seedProduct(t *testing.T, catalog *catalogmemory.Repository, id string, priceInCents int64) *catalogdomain.Product {
	t.Helper()
	product, err := catalog.Save(context.Background(), &catalogdomain.Product{
		ID:            id,
		UserID:        "seller-1",
		Name:          "Product " + id,
		ImageURL:      "https://img.example/" + id,
		PriceInCents:  priceInCents,
		StockQuantity: 10,
	})
	require.NoError(t, err)
	return product
}

func TestAddItem_StoresSnapshot(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1299)

	item, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 2)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "prod-1", item.ProductID)
	assert.Equal(t, int64(2), item.Quantity)
	assert.Equal(t, int64(1299), item.ProductData.PriceInCents)
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 500)

	item, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Quantity)
}

func TestAddItem_MergesQuantitiesAndRefreshesSnapshot(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1000)

	first, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 2)
	require.NoError(t, err)

	// price changed between the two adds; the stored snapshot must follow
	newPrice := int64(1500)
	updated, err := catalog.Update(context.Background(), "prod-1", patchPrice(newPrice))
	require.NoError(t, err)

	merged, err := svc.AddItem(context.Background(), "user-1", updated.Snapshot(), 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, int64(5), merged.Quantity)
	assert.Equal(t, newPrice, merged.ProductData.PriceInCents)

	summary, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
}

func TestAddItem_InvalidInput(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1000)

	_, err := svc.AddItem(context.Background(), "", product.Snapshot(), 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddItem(context.Background(), "user-1", catalogdomain.ProductSnapshot{}, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateQuantity_SetsNewQuantity(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1000)
	_, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 2)
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(context.Background(), "user-1", "prod-1", 7)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(7), item.Quantity)
}

func TestUpdateQuantity_ZeroRemovesItem(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1000)
	_, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 2)
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(context.Background(), "user-1", "prod-1", 0)
	require.NoError(t, err)
	assert.Nil(t, item)

	count, err := svc.Count(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetCart_TotalsAndLivePrices(t *testing.T) {
	svc, catalog := newCartFixture(t)
	cheap := seedProduct(t, catalog, "prod-1", 500)
	dear := seedProduct(t, catalog, "prod-2", 2599)

	_, err := svc.AddItem(context.Background(), "user-1", cheap.Snapshot(), 3)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user-1", dear.Snapshot(), 1)
	require.NoError(t, err)

	// catalog price moves after the add; the summary uses the live price
	_, err = catalog.Update(context.Background(), "prod-1", patchPrice(600))
	require.NoError(t, err)

	summary, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.TotalItems)
	assert.InDelta(t, 43.99, summary.TotalPrice, 0.001)
}

func TestGetCart_VanishedProductFallsBackToSnapshot(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 800)
	_, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 2)
	require.NoError(t, err)

	_, err = catalog.Delete(context.Background(), "prod-1")
	require.NoError(t, err)

	summary, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Nil(t, summary.Lines[0].Product)
	assert.InDelta(t, 16.00, summary.TotalPrice, 0.001)
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1000)
	_, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), "user-1", "prod-1"))
	require.NoError(t, svc.RemoveItem(context.Background(), "user-1", "prod-1"))
}

func TestClear_EmptiesOnlyThatUser(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedProduct(t, catalog, "prod-1", 1000)
	_, err := svc.AddItem(context.Background(), "user-1", product.Snapshot(), 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user-2", product.Snapshot(), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), "user-1"))

	count, err := svc.Count(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = svc.Count(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCount_SumsQuantities(t *testing.T) {
	svc, catalog := newCartFixture(t)
	one := seedProduct(t, catalog, "prod-1", 1000)
	two := seedProduct(t, catalog, "prod-2", 2000)
	_, err := svc.AddItem(context.Background(), "user-1", one.Snapshot(), 3)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user-1", two.Snapshot(), 2)
	require.NoError(t, err)

	count, err := svc.Count(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
