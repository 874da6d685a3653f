package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/helmandshop/shop-api/internal/domains/catalog/application"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	catalogports "github.com/helmandshop/shop-api/internal/domains/catalog/ports"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the catalog bounded context service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

type productPayload struct {
	UserID               string   `json:"userId"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	ImageURL             string   `json:"imageUrl"`
	Tags                 []string `json:"tags"`
	PriceInCents         int64    `json:"priceInCents"`
	AvailableForPurchase bool     `json:"availableForPurchase"`
	Weight               string   `json:"weight"`
	StockQuantity        int64    `json:"stockQuantity"`
	Category             string   `json:"category"`
}

type productPatchPayload struct {
	Name                 *string  `json:"name"`
	Description          *string  `json:"description"`
	ImageURL             *string  `json:"imageUrl"`
	Tags                 []string `json:"tags"`
	PriceInCents         *int64   `json:"priceInCents"`
	AvailableForPurchase *bool    `json:"availableForPurchase"`
	Weight               *string  `json:"weight"`
	StockQuantity        *int64   `json:"stockQuantity"`
	Category             *string  `json:"category"`
}

// Get /api/products
// List all products
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductViews(products))
}

// Post /api/products
// Create a product
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), catalogdomain.Product{
		UserID:               payload.UserID,
		Name:                 payload.Name,
		Description:          payload.Description,
		ImageURL:             payload.ImageURL,
		Tags:                 payload.Tags,
		PriceInCents:         payload.PriceInCents,
		AvailableForPurchase: payload.AvailableForPurchase,
		Weight:               payload.Weight,
		StockQuantity:        payload.StockQuantity,
		Category:             payload.Category,
	})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductView(product))
}

// Get /api/products/:id
// Find product by ID
func (api *ProductAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(product))
}

// Put /api/products/:id
// Update an existing product
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	var payload productPatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), c.Param("id"), catalogports.ProductPatch{
		Name:                 payload.Name,
		Description:          payload.Description,
		ImageURL:             payload.ImageURL,
		Tags:                 payload.Tags,
		PriceInCents:         payload.PriceInCents,
		AvailableForPurchase: payload.AvailableForPurchase,
		Weight:               payload.Weight,
		StockQuantity:        payload.StockQuantity,
		Category:             payload.Category,
	})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(product))
}

// Delete /api/products/:id
// Delete a product, returning its last state
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	product, err := api.service.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(product))
}

func (api *ProductAPI) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, catalogports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("product", c.Param("id")))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
