package models

import "time"

// OrderItem is one line of a placed order, with the price frozen at purchase
// time.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"-"`
	PerfumeID int64   `json:"perfume_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order with its lines.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"-"`
	UserEmail   string      `json:"user_email"`
	UserName    string      `json:"user_name"`
	UserPhone   string      `json:"user_phone"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items"`
}
