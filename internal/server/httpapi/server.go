// Package httpapi exposes the storefront over REST. Routes live under
// /api/v1; errors use a {"detail": "..."} envelope.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dkovalev7/scentshop/internal/logging"
	"github.com/dkovalev7/scentshop/internal/server/models"
	"github.com/dkovalev7/scentshop/internal/server/services"
)

type userService interface {
	Register(ctx context.Context, username, email string, password []byte) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ValidateAccessToken(token string) (int64, error)
}

type catalogService interface {
	List(ctx context.Context, skip, limit int) ([]models.Perfume, error)
	Get(ctx context.Context, id int64) (*models.Perfume, error)
	Create(ctx context.Context, p *models.Perfume) (*models.Perfume, error)
	Update(ctx context.Context, p *models.Perfume) (*models.Perfume, error)
	Deactivate(ctx context.Context, id int64) error
}

type cartService interface {
	Get(ctx context.Context, userID int64) ([]models.CartItem, float64, error)
	Add(ctx context.Context, userID, perfumeID int64, quantity int) error
	UpdateQuantity(ctx context.Context, userID, perfumeID int64, quantity int) error
	Remove(ctx context.Context, userID, perfumeID int64) error
	Clear(ctx context.Context, userID int64) error
}

type orderService interface {
	Create(ctx context.Context, userID int64, email, name, phone string) (*models.Order, error)
	List(ctx context.Context, userID int64) ([]models.Order, error)
}

type uploadService interface {
	CreateImageUploadTicket(ctx context.Context, filename string) (*services.UploadTicket, error)
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   userService
	catalog catalogService
	carts   cartService
	orders  orderService
	uploads uploadService
}

func NewHTTPServer(a string, l logging.Logger, us userService, cs catalogService,
	crt cartService, os orderService, up uploadService) (*HTTPServer, error) {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		catalog: cs,
		carts:   crt,
		orders:  os,
		uploads: up,
	}, nil
}

func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", s.requireAuth(s.handleMe))

	mux.HandleFunc("GET /api/v1/perfumes/{$}", s.handleListPerfumes)
	mux.HandleFunc("GET /api/v1/perfumes/{id}", s.handleGetPerfume)
	mux.HandleFunc("POST /api/v1/perfumes/{$}", s.requireAuth(s.handleCreatePerfume))
	mux.HandleFunc("PUT /api/v1/perfumes/{id}", s.requireAuth(s.handleUpdatePerfume))
	mux.HandleFunc("DELETE /api/v1/perfumes/{id}", s.requireAuth(s.handleDeletePerfume))

	mux.HandleFunc("GET /api/v1/cart/{$}", s.requireAuth(s.handleGetCart))
	mux.HandleFunc("POST /api/v1/cart/{$}", s.requireAuth(s.handleAddToCart))
	mux.HandleFunc("PUT /api/v1/cart/{perfume_id}", s.requireAuth(s.handleUpdateCartLine))
	mux.HandleFunc("DELETE /api/v1/cart/{perfume_id}", s.requireAuth(s.handleRemoveCartLine))
	mux.HandleFunc("DELETE /api/v1/cart/{$}", s.requireAuth(s.handleClearCart))

	mux.HandleFunc("POST /api/v1/orders/{$}", s.requireAuth(s.handleCreateOrder))
	mux.HandleFunc("GET /api/v1/orders/{$}", s.requireAuth(s.handleListOrders))

	mux.HandleFunc("POST /api/v1/uploads/image", s.requireAuth(s.handleImageUpload))

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
