package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status enumerates order progression. Transitions are one-directional:
// PROCESSING -> SHIPPING -> DELIVERED.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusShipping   Status = "SHIPPING"
	StatusDelivered  Status = "DELIVERED"
)

var (
	ErrMissingUser    = errors.New("userId is required")
	ErrNoItems        = errors.New("items are required")
	ErrMissingAddress = errors.New("shippingAddress is required")
	ErrMissingTotal   = errors.New("totalAmount is required")
	ErrInvalidItem    = errors.New("line item is invalid")
	ErrInvalidStatus  = errors.New("order status is invalid")
)

// Order is one purchased line item. A checkout with N items produces N orders
// sharing a shipping address and payment intent prefix. Immutable after
// creation except for status progression.
type Order struct {
	ID                string
	UserID            string
	ProductID         string
	ShippingAddressID string
	Quantity          int64
	// PricePaidInCents captures price x quantity in minor units at checkout
	// time, independent of later catalog edits.
	PricePaidInCents int64
	// PaymentIntentID is an opaque correlation token for an external payment
	// processor. Generated here, never verified.
	PaymentIntentID string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AdvanceStatus moves the order forward; moving backwards is rejected.
func (o *Order) AdvanceStatus(next Status) error {
	if rank(next) < 0 {
		return ErrInvalidStatus
	}
	if rank(next) < rank(o.Status) {
		return ErrInvalidStatus
	}
	o.Status = next
	return nil
}

func rank(s Status) int {
	switch s {
	case StatusProcessing:
		return 0
	case StatusShipping:
		return 1
	case StatusDelivered:
		return 2
	default:
		return -1
	}
}

// LineItem is one product + quantity entry within a checkout request.
// Price is expressed in major currency units as submitted by the client.
type LineItem struct {
	ProductID string  `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

// PricePaidInCents converts the line to minor units: price x quantity x 100.
func (l LineItem) PricePaidInCents() int64 {
	return int64(math.Round(l.Price * float64(l.Quantity) * 100))
}

// Checkout is a validated order placement request.
type Checkout struct {
	UserID            string     `json:"userId"`
	Items             []LineItem `json:"items"`
	ShippingAddressID string     `json:"shippingAddressId"`
	// TotalAmount is client-declared and only presence-checked; it is not
	// cross-validated against the computed line totals.
	TotalAmount float64 `json:"totalAmount"`
}

// Validate enforces presence of all four request fields and sane line items.
func (c *Checkout) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrMissingUser
	}
	if len(c.Items) == 0 {
		return ErrNoItems
	}
	if strings.TrimSpace(c.ShippingAddressID) == "" {
		return ErrMissingAddress
	}
	if c.TotalAmount == 0 {
		return ErrMissingTotal
	}
	for _, item := range c.Items {
		if strings.TrimSpace(item.ProductID) == "" || item.Quantity <= 0 {
			return fmt.Errorf("%w: product %q quantity %d", ErrInvalidItem, item.ProductID, item.Quantity)
		}
	}
	return nil
}

// BuildOrders expands the checkout into one PROCESSING order per line item.
func (c *Checkout) BuildOrders() []*Order {
	orders := make([]*Order, 0, len(c.Items))
	for _, item := range c.Items {
		orders = append(orders, &Order{
			ID:                uuid.NewString(),
			UserID:            c.UserID,
			ProductID:         item.ProductID,
			ShippingAddressID: c.ShippingAddressID,
			Quantity:          item.Quantity,
			PricePaidInCents:  item.PricePaidInCents(),
			PaymentIntentID:   NewPaymentIntentID(),
			Status:            StatusProcessing,
		})
	}
	return orders
}

// NewPaymentIntentID mints an opaque token: wall-clock millis plus a short
// random suffix. Correlation only; uniqueness is not cryptographically
// guaranteed and nothing downstream verifies it.
func NewPaymentIntentID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("pi_%d_%s", time.Now().UnixMilli(), suffix)
}
