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

// CartService keeps one cart per user. Stock is checked on every mutation so
// the cart can never hold more of a perfume than the catalog has.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{db: db, repomanager: m}
}

// Get returns the cart lines and the running total.
func (s *CartService) Get(ctx context.Context, userID int64) ([]models.CartItem, float64, error) {
	cartID, err := s.repomanager.Carts(s.db).GetOrCreate(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting cart: %v", err)
	}
	items, err := s.repomanager.Carts(s.db).Items(ctx, cartID)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing cart: %v", err)
	}
	var total float64
	for _, it := range items {
		total += it.Perfume.Price * float64(it.Quantity)
	}
	return items, total, nil
}

// Add merges quantity into the user's cart line for the perfume. The combined
// quantity must not exceed stock; otherwise common.ErrOutOfStock is returned
// and the cart stays unchanged.
func (s *CartService) Add(ctx context.Context, userID, perfumeID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		perfume, err := s.repomanager.Perfumes(tx).GetByID(ctx, perfumeID)
		if err != nil {
			return err
		}
		if !perfume.IsActive {
			return common.ErrorNotFound
		}

		cartsRepo := s.repomanager.Carts(tx)
		cartID, err := cartsRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting cart: %v", err)
		}
		current, err := cartsRepo.GetQuantity(ctx, cartID, perfumeID)
		if err != nil {
			return fmt.Errorf("error reading cart line: %v", err)
		}
		if current+quantity > perfume.StockQuantity {
			return common.ErrOutOfStock
		}
		return cartsRepo.Upsert(ctx, cartID, perfumeID, current+quantity)
	})
}

// UpdateQuantity replaces the line quantity. Zero removes the line. Updating
// a line that does not exist yields common.ErrorNotFound; asking for more
// than the stock yields common.ErrOutOfStock.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, perfumeID int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cartsRepo := s.repomanager.Carts(tx)
		cartID, err := cartsRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("error getting cart: %v", err)
		}
		if quantity == 0 {
			return cartsRepo.Remove(ctx, cartID, perfumeID)
		}

		current, err := cartsRepo.GetQuantity(ctx, cartID, perfumeID)
		if err != nil {
			return fmt.Errorf("error reading cart line: %v", err)
		}
		if current == 0 {
			return common.ErrorNotFound
		}
		perfume, err := s.repomanager.Perfumes(tx).GetByID(ctx, perfumeID)
		if err != nil {
			return err
		}
		if quantity > perfume.StockQuantity {
			return common.ErrOutOfStock
		}
		return cartsRepo.Upsert(ctx, cartID, perfumeID, quantity)
	})
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(ctx context.Context, userID, perfumeID int64) error {
	cartsRepo := s.repomanager.Carts(s.db)
	cartID, err := cartsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting cart: %v", err)
	}
	if err := cartsRepo.Remove(ctx, cartID, perfumeID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error removing cart line: %v", err)
	}
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cartsRepo := s.repomanager.Carts(s.db)
	cartID, err := cartsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting cart: %v", err)
	}
	return cartsRepo.Clear(ctx, cartID)
}
