package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/helmandshop/shop-api/internal/domains/users/domain"
	userports "github.com/helmandshop/shop-api/internal/domains/users/ports"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

type userPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
	Role     string `json:"role"`
}

// Post /api/users
// Register or update a user from the identity provider
func (api *UserAPI) RegisterUser(c *gin.Context) {
	var payload userPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.RegisterUser(c.Request.Context(), userdomain.User{
		ID:       payload.ID,
		Name:     payload.Name,
		Email:    payload.Email,
		ImageURL: payload.ImageURL,
		Role:     userdomain.Role(payload.Role),
	})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"imageUrl":  user.ImageURL,
		"role":      string(user.Role),
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	})
}

// Get /api/users/:id
// Return the user plus cart, favorites, and order counts
func (api *UserAPI) GetUser(c *gin.Context) {
	profile, err := api.service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserProfileView(profile))
}

func (api *UserAPI) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userdomain.ErrMissingID),
		errors.Is(err, userdomain.ErrMissingName),
		errors.Is(err, userdomain.ErrMissingEmail),
		errors.Is(err, userdomain.ErrInvalidRole):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, userports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("user", c.Param("id")))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
