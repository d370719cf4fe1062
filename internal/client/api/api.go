// Package api implements the REST client for the ScentShop backend.
// It is the single place where transport failures are classified: callers
// receive sentinel errors or typed *ConflictError values and never inspect
// HTTP responses themselves.
package api

import (
	"context"

	"github.com/dkovalev7/scentshop/internal/client/models"
)

// Client is the remote API surface consumed by the session holder, the cart
// coordinator and the CLI. All methods honor context cancellation.
type Client interface {
	Close() error

	// Auth.
	Register(ctx context.Context, username, email string, password []byte) (*models.TokenPair, error)
	Login(ctx context.Context, email string, password []byte) (*models.TokenPair, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)

	// Token management (used to restore a persisted session).
	SetTokens(pair models.TokenPair)
	Tokens() models.TokenPair

	// Catalog.
	ListPerfumes(ctx context.Context, skip, limit int) ([]models.Perfume, error)
	GetPerfume(ctx context.Context, id int64) (*models.Perfume, error)
	CreatePerfume(ctx context.Context, p *models.Perfume) (*models.Perfume, error)
	UpdatePerfume(ctx context.Context, p *models.Perfume) (*models.Perfume, error)
	DeletePerfume(ctx context.Context, id int64) error

	// Cart.
	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, perfumeID int64, quantity int) error
	UpdateQuantity(ctx context.Context, perfumeID int64, quantity int) error
	RemoveFromCart(ctx context.Context, perfumeID int64) error
	ClearCart(ctx context.Context) error

	// Orders.
	CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)

	// Uploads.
	RequestImageUpload(ctx context.Context, filename string) (*models.ImageUploadTicket, error)
}
