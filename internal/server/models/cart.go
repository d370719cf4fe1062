package models

// CartItem is one line of a user's cart, joined with its perfume.
type CartItem struct {
	ID       int64   `json:"id"`
	CartID   int64   `json:"-"`
	Perfume  Perfume `json:"perfume"`
	Quantity int     `json:"quantity"`
}
