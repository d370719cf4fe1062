package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovalev7/scentshop/internal/common"
	"github.com/dkovalev7/scentshop/internal/dbx"
	"github.com/dkovalev7/scentshop/internal/server/models"
	"github.com/dkovalev7/scentshop/internal/server/repositories/repomanager"
)

// ErrEmptyCart is returned when an order is placed with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// OrderService turns carts into orders. Creation runs in one transaction:
// stock is decremented line by line, the order is written with a server-side
// total, and the cart is cleared. A stock shortfall rolls the whole thing
// back with common.ErrOutOfStock.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m}
}

// Create places an order from the user's current cart. Contact details come
// from the request; quantities and prices come from the cart, not the client.
func (s *OrderService) Create(ctx context.Context, userID int64, email, name, phone string) (*models.Order, error) {
	var order *models.Order

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cartsRepo := s.repomanager.Carts(tx)
		cartID, err := cartsRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting cart: %v", err)
		}
		items, err := cartsRepo.Items(ctx, cartID)
		if err != nil {
			return fmt.Errorf("error listing cart: %v", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		perfumesRepo := s.repomanager.Perfumes(tx)
		var total float64
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			remaining, err := perfumesRepo.AdjustStock(ctx, it.Perfume.ID, -it.Quantity)
			if err != nil {
				return fmt.Errorf("error adjusting stock: %v", err)
			}
			if remaining < 0 {
				return common.ErrOutOfStock
			}
			total += it.Perfume.Price * float64(it.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				PerfumeID: it.Perfume.ID,
				Quantity:  it.Quantity,
				Price:     it.Perfume.Price,
			})
		}

		order, err = s.repomanager.Orders(tx).Create(ctx, &models.Order{
			UserID:      userID,
			UserEmail:   email,
			UserName:    name,
			UserPhone:   phone,
			TotalAmount: total,
			Status:      "pending",
			Items:       orderItems,
		})
		if err != nil {
			return fmt.Errorf("error creating order: %v", err)
		}

		return cartsRepo.Clear(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List returns the user's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.repomanager.Orders(s.db).ListByUser(ctx, userID)
}
