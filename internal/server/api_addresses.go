package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	addressdomain "github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	addressports "github.com/helmandshop/shop-api/internal/domains/addresses/ports"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// AddressAPI wires HTTP transport with the shipping address service.
type AddressAPI struct {
	service addressports.Service
}

// NewAddressAPI creates an AddressAPI backed by the provided service.
func NewAddressAPI(service addressports.Service) AddressAPI {
	return AddressAPI{service: service}
}

type addressPayload struct {
	FullName    string `json:"fullName"`
	Country     string `json:"country"`
	Province    string `json:"province"`
	City        string `json:"city"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// Get /api/addresses/:userId
// List the user's shipping addresses
func (api *AddressAPI) ListAddresses(c *gin.Context) {
	addresses, err := api.service.ListAddresses(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	views := make([]addressView, 0, len(addresses))
	for _, address := range addresses {
		views = append(views, toAddressView(address))
	}
	c.JSON(http.StatusOK, views)
}

// Post /api/addresses/:userId/add
// Add a shipping address; every postal field is required
func (api *AddressAPI) AddAddress(c *gin.Context) {
	var payload addressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	address, err := api.service.AddAddress(c.Request.Context(), addressdomain.ShippingAddress{
		UserID:      c.Param("userId"),
		FullName:    payload.FullName,
		Country:     payload.Country,
		Province:    payload.Province,
		City:        payload.City,
		Address:     payload.Address,
		PhoneNumber: payload.PhoneNumber,
	})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressView(address))
}

func (api *AddressAPI) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, addressdomain.ErrIncomplete):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, addressports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("shipping address", c.Param("userId")))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
