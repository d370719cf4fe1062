package carts

import (
	"context"
	"fmt"

	"github.com/dkovalev7/scentshop/internal/common"
	"github.com/dkovalev7/scentshop/internal/dbx"
	"github.com/dkovalev7/scentshop/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreate(ctx context.Context, userID int64) (int64, error) {
	query :=
		`INSERT INTO carts (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = excluded.user_id
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Items(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	query :=
		`SELECT ci.id, ci.cart_id, ci.quantity,
		        p.id, p.name, p.brand, p.price, p.perfume_type, p.description, p.img_url,
		        p.stock_quantity, p.volume, p.concentration, p.is_active, p.created_at
		 FROM cart_items ci
		 JOIN perfumes p ON p.id = ci.perfume_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.id
		 `

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.CartItem
	for rows.Next() {
		var it models.CartItem
		p := &it.Perfume
		err := rows.Scan(&it.ID, &it.CartID, &it.Quantity,
			&p.ID, &p.Name, &p.Brand, &p.Price, &p.Type, &p.Description, &p.ImgURL,
			&p.StockQuantity, &p.Volume, &p.Concentration, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetQuantity(ctx context.Context, cartID, perfumeID int64) (int, error) {
	query := `SELECT COALESCE(
		(SELECT quantity FROM cart_items WHERE cart_id = $1 AND perfume_id = $2), 0)`

	var qty int
	if err := r.db.QueryRowContext(ctx, query, cartID, perfumeID).Scan(&qty); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return qty, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, cartID, perfumeID int64, quantity int) error {
	query :=
		`INSERT INTO cart_items (cart_id, perfume_id, quantity)
         VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, perfume_id) DO UPDATE SET quantity = excluded.quantity
		 `

	if _, err := r.db.ExecContext(ctx, query, cartID, perfumeID, quantity); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, cartID, perfumeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND perfume_id = $2`, cartID, perfumeID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, cartID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
