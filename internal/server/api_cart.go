package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/helmandshop/shop-api/internal/domains/cart/application"
	cartports "github.com/helmandshop/shop-api/internal/domains/cart/ports"
	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

type addCartItemPayload struct {
	Product  *catalogdomain.ProductSnapshot `json:"product"`
	Quantity *int64                         `json:"quantity"`
}

type updateCartItemPayload struct {
	ProductID string `json:"productId"`
	Quantity  *int64 `json:"quantity"`
}

// Get /api/cart/:userId
// Return the cart joined with live products plus totals
func (api *CartAPI) GetCart(c *gin.Context) {
	summary, err := api.service.GetCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartSummaryView(summary))
}

// Post /api/cart/:userId/add
// Add a product to the cart, merging quantities on an existing row
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload addCartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Product == nil || payload.Product.ID == "" {
		respondProblem(c, apierrors.ErrValidation.WithDetail("product information is incomplete"))
		return
	}
	quantity := int64(1)
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	item, err := api.service.AddItem(c.Request.Context(), c.Param("userId"), *payload.Product, quantity)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartItemView(item))
}

// Put /api/cart/:userId/update
// Set the quantity for a carted product; zero or less removes the row
func (api *CartAPI) UpdateItem(c *gin.Context) {
	var payload updateCartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.ProductID == "" || payload.Quantity == nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail("productId and quantity are required"))
		return
	}
	item, err := api.service.UpdateQuantity(c.Request.Context(), c.Param("userId"), payload.ProductID, *payload.Quantity)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": toCartItemView(item)})
}

// Delete /api/cart/:userId/remove/:productId
// Remove one product from the cart
func (api *CartAPI) RemoveItem(c *gin.Context) {
	if err := api.service.RemoveItem(c.Request.Context(), c.Param("userId"), c.Param("productId")); err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete /api/cart/:userId/clear
// Remove every cart row for the user
func (api *CartAPI) Clear(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get /api/cart/:userId/count
// Total quantity across the user's cart rows
func (api *CartAPI) Count(c *gin.Context) {
	count, err := api.service.Count(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (api *CartAPI) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, cartports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("cart item", c.Param("userId")))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
