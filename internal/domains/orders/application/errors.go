package application

import (
	"errors"
	"fmt"

	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the checkout request violated an invariant.
	ErrInvalidInput = errors.New("invalid checkout input")
	// ErrUnprocessable signals a well-formed checkout that cannot be
	// fulfilled (unknown product, insufficient stock).
	ErrUnprocessable = errors.New("checkout cannot be fulfilled")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrMissingUser),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrMissingAddress),
		errors.Is(err, domain.ErrMissingTotal),
		errors.Is(err, domain.ErrInvalidItem):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrInsufficientStock),
		errors.Is(err, ports.ErrProductNotFound):
		return fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}
	return err
}
