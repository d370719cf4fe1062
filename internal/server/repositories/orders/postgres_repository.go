package orders

import (
	"context"
	"fmt"

	"github.com/dkovalev7/scentshop/internal/dbx"
	"github.com/dkovalev7/scentshop/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {

	query :=
		`INSERT INTO orders (user_id, user_email, user_name, user_phone, total_amount, status)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		order.UserID, order.UserEmail, order.UserName, order.UserPhone,
		order.TotalAmount, order.Status).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	itemQuery :=
		`INSERT INTO order_items (order_id, perfume_id, quantity, price)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	for i := range order.Items {
		it := &order.Items[i]
		it.OrderID = order.ID
		if err := r.db.QueryRowContext(ctx, itemQuery,
			order.ID, it.PerfumeID, it.Quantity, it.Price).Scan(&it.ID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return order, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query :=
		`SELECT id, user_id, user_email, user_name, user_phone, total_amount, status, created_at
		 FROM orders
		 WHERE user_id = $1
		 ORDER BY id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	index := map[int64]int{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &o.UserPhone,
			&o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemQuery :=
		`SELECT oi.id, oi.order_id, oi.perfume_id, oi.quantity, oi.price
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.user_id = $1
		 ORDER BY oi.id
		 `

	itemRows, err := r.db.QueryContext(ctx, itemQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it models.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.PerfumeID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if i, ok := index[it.OrderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}
