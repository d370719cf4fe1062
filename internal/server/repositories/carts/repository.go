// Package carts provides persistence for per-user carts.
package carts

import (
	"context"

	"github.com/dkovalev7/scentshop/internal/server/models"
)

type Repository interface {
	// GetOrCreate returns the cart id for the user, creating the cart row on
	// first use.
	GetOrCreate(ctx context.Context, userID int64) (int64, error)
	Items(ctx context.Context, cartID int64) ([]models.CartItem, error)
	// GetQuantity returns the quantity of the line, zero when absent.
	GetQuantity(ctx context.Context, cartID, perfumeID int64) (int, error)
	// Upsert sets the line quantity, inserting the line when absent.
	Upsert(ctx context.Context, cartID, perfumeID int64, quantity int) error
	// Remove deletes a line; absent lines yield common.ErrorNotFound.
	Remove(ctx context.Context, cartID, perfumeID int64) error
	Clear(ctx context.Context, cartID int64) error
}
