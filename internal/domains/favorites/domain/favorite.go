package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
)

var (
	ErrMissingUser       = errors.New("favorite user is required")
	ErrIncompleteProduct = errors.New("product information is incomplete")
)

// Favorite marks a product a user has saved. ProductData preserves the
// product as it looked when favorited.
type Favorite struct {
	ID          string
	UserID      string
	ProductID   string
	ProductData catalogdomain.ProductSnapshot
	CreatedAt   time.Time
}

// NewFavorite validates and constructs a favorite, minting an ID when absent.
func NewFavorite(userID string, snapshot catalogdomain.ProductSnapshot) (*Favorite, error) {
	fav := &Favorite{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProductID:   snapshot.ID,
		ProductData: snapshot,
	}
	if err := fav.Validate(); err != nil {
		return nil, err
	}
	return fav, nil
}

// Validate enforces invariants on the favorite.
func (f *Favorite) Validate() error {
	if strings.TrimSpace(f.UserID) == "" {
		return ErrMissingUser
	}
	if strings.TrimSpace(f.ProductID) == "" {
		return ErrIncompleteProduct
	}
	return nil
}

// FavoriteLine pairs a favorite with the live product when it still exists.
type FavoriteLine struct {
	Favorite *Favorite
	Product  *catalogdomain.Product
}
