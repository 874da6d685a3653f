package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderapp "github.com/helmandshop/shop-api/internal/domains/orders/application"
	orderdomain "github.com/helmandshop/shop-api/internal/domains/orders/domain"
	orderports "github.com/helmandshop/shop-api/internal/domains/orders/ports"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

type checkoutPayload struct {
	UserID          string                 `json:"userId"`
	Items           []orderdomain.LineItem `json:"items"`
	ShippingAddress *struct {
		ID string `json:"id"`
	} `json:"shippingAddress"`
	TotalAmount float64 `json:"totalAmount"`
}

// Post /api/orders
// Place an order: one row per line item, all-or-nothing
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload checkoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	checkout := orderdomain.Checkout{
		UserID:      payload.UserID,
		Items:       payload.Items,
		TotalAmount: payload.TotalAmount,
	}
	if payload.ShippingAddress != nil {
		checkout.ShippingAddressID = payload.ShippingAddress.ID
	}
	orders, err := api.placeOrder(c.Request.Context(), checkout)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "orders": toOrderViews(orders)})
}

func (api *OrderAPI) placeOrder(ctx context.Context, checkout orderdomain.Checkout) ([]*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, checkout)
	}
	return api.service.PlaceOrder(ctx, checkout)
}

// Get /api/orders/:userId
// List the user's orders joined with product and shipping address
func (api *OrderAPI) ListOrders(c *gin.Context) {
	details, err := api.service.ListOrders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	views := make([]orderDetailView, 0, len(details))
	for _, detail := range details {
		views = append(views, toOrderDetailView(detail))
	}
	c.JSON(http.StatusOK, views)
}

func (api *OrderAPI) respondServiceError(c *gin.Context, err error) {
	var stockErr *orderports.StockError
	switch {
	case errors.Is(err, orderapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.As(err, &stockErr):
		respondProblem(c, apierrors.ErrUnprocessable.
			WithDetail(err.Error()).
			WithExtension("productId", stockErr.ProductID).
			WithExtension("requested", stockErr.Requested))
	case errors.Is(err, orderports.ErrInsufficientStock), errors.Is(err, orderports.ErrProductNotFound):
		respondProblem(c, apierrors.ErrUnprocessable.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
