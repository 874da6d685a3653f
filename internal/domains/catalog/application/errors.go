package application

import (
	"errors"
	"fmt"

	"github.com/helmandshop/shop-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrMissingImageURL) ||
		errors.Is(err, domain.ErrMissingOwner) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
