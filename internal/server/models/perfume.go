package models

import "time"

// Perfume is one catalog row. Stock lives here; the cart and order services
// check it before committing.
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
