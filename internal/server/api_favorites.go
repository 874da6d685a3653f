package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	favoritesdomain "github.com/helmandshop/shop-api/internal/domains/favorites/domain"
	favoritesports "github.com/helmandshop/shop-api/internal/domains/favorites/ports"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// FavoritesAPI wires HTTP transport with the favorites bounded context service.
type FavoritesAPI struct {
	service favoritesports.Service
}

// NewFavoritesAPI creates a FavoritesAPI backed by the provided service.
func NewFavoritesAPI(service favoritesports.Service) FavoritesAPI {
	return FavoritesAPI{service: service}
}

type addFavoritePayload struct {
	Product *catalogdomain.ProductSnapshot `json:"product"`
}

// Get /api/favorites/:userId
// List favorites joined with live products
func (api *FavoritesAPI) ListFavorites(c *gin.Context) {
	lines, err := api.service.ListFavorites(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	items := make([]favoriteView, 0, len(lines))
	for _, line := range lines {
		items = append(items, toFavoriteLineView(line))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totalFavorites": len(items)})
}

// Post /api/favorites/:userId/add
// Favorite a product; favoriting twice returns the existing row
func (api *FavoritesAPI) AddFavorite(c *gin.Context) {
	var payload addFavoritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Product == nil || payload.Product.ID == "" {
		respondProblem(c, apierrors.ErrValidation.WithDetail("product information is incomplete"))
		return
	}
	favorite, err := api.service.AddFavorite(c.Request.Context(), c.Param("userId"), *payload.Product)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFavoriteView(favorite))
}

// Delete /api/favorites/:userId/remove/:productId
// Unfavorite a product
func (api *FavoritesAPI) RemoveFavorite(c *gin.Context) {
	if err := api.service.RemoveFavorite(c.Request.Context(), c.Param("userId"), c.Param("productId")); err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get /api/favorites/:userId/check/:productId
// Report whether the product is favorited
func (api *FavoritesAPI) CheckFavorite(c *gin.Context) {
	isFavorite, err := api.service.IsFavorite(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFavorite": isFavorite})
}

func (api *FavoritesAPI) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, favoritesdomain.ErrMissingUser), errors.Is(err, favoritesdomain.ErrIncompleteProduct):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, favoritesports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("favorite", c.Param("productId")))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
