package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingName     = errors.New("product name is required")
	ErrMissingImageURL = errors.New("product image url is required")
	ErrMissingOwner    = errors.New("product owner is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStock    = errors.New("stock quantity must not be negative")
)

// Product models a catalog entry owned by a seller. Prices are stored in
// minor currency units to keep monetary math integral.
type Product struct {
	ID                   string
	UserID               string
	Name                 string
	Description          string
	ImageURL             string
	Tags                 []string
	PriceInCents         int64
	AvailableForPurchase bool
	Weight               string
	StockQuantity        int64
	Category             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewProduct validates and constructs a product, minting an ID when absent.
func NewProduct(p Product) (*Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return ErrMissingImageURL
	}
	if strings.TrimSpace(p.UserID) == "" {
		return ErrMissingOwner
	}
	if p.PriceInCents < 0 {
		return ErrInvalidPrice
	}
	if p.StockQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}

// ProductSnapshot is the immutable view of a product captured when a user
// carts or favorites it. It preserves "price at time of add" semantics
// independently of later catalog edits.
type ProductSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl"`
	PriceInCents int64  `json:"priceInCents"`
	Weight       string `json:"weight"`
	Category     string `json:"category,omitempty"`
}

// Snapshot captures the current state of the product as an immutable value.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		ImageURL:     p.ImageURL,
		PriceInCents: p.PriceInCents,
		Weight:       p.Weight,
		Category:     p.Category,
	}
}
