// Package models holds the wire-level data types the storefront client
// exchanges with the ScentShop API.
package models

import "time"

// Perfume is one catalog entry as served by the API.
type Perfume struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Price         float64   `json:"price"`
	Type          string    `json:"perfume_type"`
	Description   string    `json:"description,omitempty"`
	ImgURL        string    `json:"img_url,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	Volume        int       `json:"volume,omitempty"`
	Concentration string    `json:"concentration,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CartItem is one product line of the remote cart.
type CartItem struct {
	ID       int64   `json:"id"`
	Perfume  Perfume `json:"perfume"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Perfume.Price * float64(i.Quantity)
}

// User is the authenticated identity returned by the API.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// TokenPair bundles the short-lived access token with the refresh token
// used to rotate it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OrderItemRequest is one line of an order being placed.
type OrderItemRequest struct {
	PerfumeID int64   `json:"perfume_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest is the payload for creating an order from the cart.
type OrderRequest struct {
	UserEmail string             `json:"user_email"`
	UserName  string             `json:"user_name"`
	UserPhone string             `json:"user_phone"`
	Items     []OrderItemRequest `json:"items"`
}

// OrderItem is one line of a created order.
type OrderItem struct {
	ID        int64   `json:"id"`
	PerfumeID int64   `json:"perfume_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a created order as returned by the API.
type Order struct {
	ID          int64       `json:"id"`
	UserEmail   string      `json:"user_email"`
	UserName    string      `json:"user_name"`
	UserPhone   string      `json:"user_phone"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

// ImageUploadTicket is a presigned upload slot for a perfume image.
type ImageUploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
