// Package perfumes provides persistence for the catalog.
package perfumes

import (
	"context"

	"github.com/dkovalev7/scentshop/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]models.Perfume, error)
	GetByID(ctx context.Context, id int64) (*models.Perfume, error)
	Create(ctx context.Context, p *models.Perfume) (*models.Perfume, error)
	Update(ctx context.Context, p *models.Perfume) (*models.Perfume, error)
	// Deactivate hides the perfume from the catalog without deleting rows
	// that orders still reference.
	Deactivate(ctx context.Context, id int64) error
	// AdjustStock adds delta (negative to decrement) to stock_quantity and
	// returns the resulting value. The caller decides whether a negative
	// result is acceptable.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}
