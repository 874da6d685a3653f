package server

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// Handlers groups the per-context APIs mounted by the router.
type Handlers struct {
	HealthAPI    HealthAPI
	ProductAPI   ProductAPI
	CartAPI      CartAPI
	FavoritesAPI FavoritesAPI
	OrderAPI     OrderAPI
	AddressAPI   AddressAPI
	UserAPI      UserAPI
	ChatAPI      ChatAPI
}

// NewRouter mounts every route on a gin engine. Middleware (otelgin,
// recovery) is left to the caller so tests can run the bare router.
func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handlers.HealthAPI.Health)
	router.POST("/chat", handlers.ChatAPI.Chat)

	api := router.Group("/api")

	api.GET("/products", handlers.ProductAPI.ListProducts)
	api.POST("/products", handlers.ProductAPI.CreateProduct)
	api.GET("/products/:id", handlers.ProductAPI.GetProduct)
	api.PUT("/products/:id", handlers.ProductAPI.UpdateProduct)
	api.DELETE("/products/:id", handlers.ProductAPI.DeleteProduct)

	api.GET("/cart/:userId", handlers.CartAPI.GetCart)
	api.POST("/cart/:userId/add", handlers.CartAPI.AddItem)
	api.PUT("/cart/:userId/update", handlers.CartAPI.UpdateItem)
	api.DELETE("/cart/:userId/remove/:productId", handlers.CartAPI.RemoveItem)
	api.DELETE("/cart/:userId/clear", handlers.CartAPI.Clear)
	api.GET("/cart/:userId/count", handlers.CartAPI.Count)

	api.GET("/favorites/:userId", handlers.FavoritesAPI.ListFavorites)
	api.POST("/favorites/:userId/add", handlers.FavoritesAPI.AddFavorite)
	api.DELETE("/favorites/:userId/remove/:productId", handlers.FavoritesAPI.RemoveFavorite)
	api.GET("/favorites/:userId/check/:productId", handlers.FavoritesAPI.CheckFavorite)

	api.POST("/orders", handlers.OrderAPI.PlaceOrder)
	api.GET("/orders/:userId", handlers.OrderAPI.ListOrders)

	api.GET("/addresses/:userId", handlers.AddressAPI.ListAddresses)
	api.POST("/addresses/:userId/add", handlers.AddressAPI.AddAddress)

	api.POST("/users", handlers.UserAPI.RegisterUser)
	api.GET("/users/:id", handlers.UserAPI.GetUser)

	router.NoRoute(func(c *gin.Context) {
		respondProblem(c, apierrors.ErrNotFound.WithDetail("route not found"))
	})

	return router
}
