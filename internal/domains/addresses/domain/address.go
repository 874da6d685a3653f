package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrIncomplete = errors.New("shipping address information is incomplete")

// ShippingAddress is a structured postal destination owned by a user.
type ShippingAddress struct {
	ID          string
	UserID      string
	FullName    string
	Country     string
	Province    string
	City        string
	Address     string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewShippingAddress validates and constructs an address, minting an ID when absent.
func NewShippingAddress(a ShippingAddress) (*ShippingAddress, error) {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate requires every postal field to be present.
func (a *ShippingAddress) Validate() error {
	for _, field := range []string{a.UserID, a.FullName, a.Country, a.Province, a.City, a.Address, a.PhoneNumber} {
		if strings.TrimSpace(field) == "" {
			return ErrIncomplete
		}
	}
	return nil
}
