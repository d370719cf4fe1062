// Package orders provides persistence for placed orders.
package orders

import (
	"context"

	"github.com/dkovalev7/scentshop/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
}
