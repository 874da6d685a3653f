package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	addressmemory "github.com/helmandshop/shop-api/internal/domains/addresses/adapters/memory"
	addressapp "github.com/helmandshop/shop-api/internal/domains/addresses/application"
	cartmemory "github.com/helmandshop/shop-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/helmandshop/shop-api/internal/domains/cart/application"
	catalogmemory "github.com/helmandshop/shop-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/helmandshop/shop-api/internal/domains/catalog/application"
	favoritesmemory "github.com/helmandshop/shop-api/internal/domains/favorites/adapters/memory"
	favoritesapp "github.com/helmandshop/shop-api/internal/domains/favorites/application"
	ordersmemory "github.com/helmandshop/shop-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/helmandshop/shop-api/internal/domains/orders/application"
	usersmemory "github.com/helmandshop/shop-api/internal/domains/users/adapters/memory"
	userapp "github.com/helmandshop/shop-api/internal/domains/users/application"
	userports "github.com/helmandshop/shop-api/internal/domains/users/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full route table onto the in-memory adapters, the
// same shape the app takes when no database is configured.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	catalogRepo := catalogmemory.NewRepository()
	cartRepo := cartmemory.NewRepository()
	favoritesRepo := favoritesmemory.NewRepository()
	addressRepo := addressmemory.NewRepository()
	userRepo := usersmemory.NewRepository()
	orderRepo := ordersmemory.NewRepository(catalogRepo, cartRepo)

	catalogSvc := catalogapp.NewService(catalogRepo)
	cartSvc := cartapp.NewService(cartRepo, catalogRepo)
	favoritesSvc := favoritesapp.NewService(favoritesRepo, catalogRepo)
	addressSvc := addressapp.NewService(addressRepo)
	orderSvc := orderapp.NewService(orderRepo,
		orderapp.WithProductReader(catalogRepo),
		orderapp.WithAddressReader(addressRepo),
	)
	userSvc := userapp.NewService(userRepo,
		userports.ActivityCounterFunc(cartRepo.CountByUser),
		userports.ActivityCounterFunc(favoritesRepo.CountByUser),
		userports.ActivityCounterFunc(orderRepo.CountByUser),
	)

	return NewRouter(Handlers{
		HealthAPI:    NewHealthAPI(nil),
		ProductAPI:   NewProductAPI(catalogSvc),
		CartAPI:      NewCartAPI(cartSvc),
		FavoritesAPI: NewFavoritesAPI(favoritesSvc),
		OrderAPI:     NewOrderAPI(orderSvc, nil),
		AddressAPI:   NewAddressAPI(addressSvc),
		UserAPI:      NewUserAPI(userSvc),
		ChatAPI:      NewChatAPI(nil, ""),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createProduct(t *testing.T, router *gin.Engine, name string, priceInCents, stock int64) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"userId":        "seller-1",
		"name":          name,
		"imageUrl":      "https://img.example/" + name + ".jpg",
		"priceInCents":  priceInCents,
		"stockQuantity": stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)
}

func addToCart(t *testing.T, router *gin.Engine, userID string, product map[string]any, quantity int64) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/cart/"+userID+"/add", gin.H{
		"product": gin.H{
			"id":           product["id"],
			"name":         product["name"],
			"imageUrl":     product["imageUrl"],
			"priceInCents": product["priceInCents"],
		},
		"quantity": quantity,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "in-memory", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)

	created := createProduct(t, router, "lamp", 2500, 12)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	rec := doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lamp", decode(t, rec)["name"])

	rec = doJSON(t, router, http.MethodPut, "/api/products/"+id, gin.H{"priceInCents": 1999})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.EqualValues(t, 1999, updated["priceInCents"])
	assert.Equal(t, "lamp", updated["name"])

	rec = doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestProductCreate_ValidationProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/products", gin.H{"userId": "seller-1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestCartFlow(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "rug", 5000, 20)

	addToCart(t, router, "user-1", product, 2)
	addToCart(t, router, "user-1", product, 1)

	rec := doJSON(t, router, http.MethodGet, "/api/cart/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode(t, rec)
	assert.EqualValues(t, 3, summary["totalItems"])
	assert.InDelta(t, 150.00, summary["totalPrice"], 0.001)
	items, _ := summary["items"].([]any)
	require.Len(t, items, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/cart/user-1/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["count"])

	rec = doJSON(t, router, http.MethodPut, "/api/cart/user-1/update", gin.H{
		"productId": product["id"], "quantity": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item removed from cart", decode(t, rec)["message"])

	rec = doJSON(t, router, http.MethodGet, "/api/cart/user-1/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["count"])
}

func TestCartAdd_MissingProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/user-1/add", gin.H{"quantity": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestFavoritesFlow(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "teapot", 1500, 8)
	id, _ := product["id"].(string)

	rec := doJSON(t, router, http.MethodGet, "/api/favorites/user-1/check/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["isFavorite"])

	rec = doJSON(t, router, http.MethodPost, "/api/favorites/user-1/add", gin.H{
		"product": gin.H{
			"id":           id,
			"name":         product["name"],
			"imageUrl":     product["imageUrl"],
			"priceInCents": product["priceInCents"],
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/favorites/user-1/check/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["isFavorite"])

	rec = doJSON(t, router, http.MethodGet, "/api/favorites/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode(t, rec)
	assert.EqualValues(t, 1, listing["totalFavorites"])

	rec = doJSON(t, router, http.MethodDelete, "/api/favorites/user-1/remove/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/favorites/user-1/check/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["isFavorite"])
}

func TestPlaceOrder_Success(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "kettle", 500, 10)
	id, _ := product["id"].(string)
	addToCart(t, router, "user-1", product, 3)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"userId": "user-1",
		"items": []gin.H{
			{"productId": id, "quantity": 3, "price": 5.00},
		},
		"shippingAddress": gin.H{"id": "addr-1"},
		"totalAmount":     15.00,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	orders, _ := body["orders"].([]any)
	require.Len(t, orders, 1)
	order, _ := orders[0].(map[string]any)
	assert.EqualValues(t, 1500, order["pricePaidInCents"])
	assert.Equal(t, "PROCESSING", order["status"])

	// stock was decremented and the cart cleared
	rec = doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, decode(t, rec)["stockQuantity"])

	rec = doJSON(t, router, http.MethodGet, "/api/cart/user-1/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["count"])

	rec = doJSON(t, router, http.MethodGet, "/api/orders/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	require.Len(t, details, 1)
	require.NotNil(t, details[0]["product"])
}

func TestPlaceOrder_ValidationProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"userId": "user-1",
		"items":  []gin.H{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestPlaceOrder_InsufficientStockProblem(t *testing.T) {
	router := newTestRouter(t)
	product := createProduct(t, router, "stove", 9000, 2)
	id, _ := product["id"].(string)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"userId": "user-1",
		"items": []gin.H{
			{"productId": id, "quantity": 5, "price": 90.00},
		},
		"shippingAddress": gin.H{"id": "addr-1"},
		"totalAmount":     450.00,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	problem := decode(t, rec)
	assert.Equal(t, id, problem["productId"])
	assert.EqualValues(t, 5, problem["requested"])

	// the failed checkout left the stock untouched
	rec = doJSON(t, router, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["stockQuantity"])
}

func TestPlaceOrder_UnknownProductProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"userId": "user-1",
		"items": []gin.H{
			{"productId": "ghost", "quantity": 1, "price": 1.00},
		},
		"shippingAddress": gin.H{"id": "addr-1"},
		"totalAmount":     1.00,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestAddressFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/addresses/user-1/add", gin.H{
		"fullName":    "Ahmad Wali",
		"country":     "Afghanistan",
		"province":    "Helmand",
		"city":        "Lashkar Gah",
		"address":     "Street 4, District 1",
		"phoneNumber": "+93700000000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/addresses/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var addresses []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addresses))
	require.Len(t, addresses, 1)
	assert.Equal(t, "Lashkar Gah", addresses[0]["city"])
}

func TestUserProfileStats(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"id":    "user-1",
		"name":  "Ahmad Wali",
		"email": "ahmad@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	product := createProduct(t, router, "mirror", 2000, 5)
	addToCart(t, router, "user-1", product, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/users/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)
	stats, _ := profile["stats"].(map[string]any)
	require.NotNil(t, stats)
	assert.EqualValues(t, 2, stats["cartCount"])
	assert.EqualValues(t, 0, stats["favoritesCount"])
	assert.EqualValues(t, 0, stats["ordersCount"])
}

func TestUserProfile_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users/ghost", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat_UnavailableWithoutClient(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/chat", gin.H{"message": "salaam"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}
