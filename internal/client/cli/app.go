package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dkovalev7/scentshop/internal/client/api"
	"github.com/dkovalev7/scentshop/internal/client/cart"
	"github.com/dkovalev7/scentshop/internal/client/config"
	"github.com/dkovalev7/scentshop/internal/client/localstore"
	"github.com/dkovalev7/scentshop/internal/client/models"
	"github.com/dkovalev7/scentshop/internal/client/session"

	_ "modernc.org/sqlite"
)

// sessionIface is the session surface the CLI needs. *session.Session
// satisfies it; tests provide a stub.
type sessionIface interface {
	Probe(ctx context.Context)
	IsAuthenticated() bool
	Current() *models.User
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, username, email string, password []byte) error
	Logout(ctx context.Context) error
}

// cartIface is the cart surface the CLI needs. *cart.Coordinator satisfies
// it; tests provide a stub.
type cartIface interface {
	State() cart.State
	AddToCart(ctx context.Context, perfume models.Perfume) error
	UpdateQuantity(ctx context.Context, perfumeID int64, quantity int) error
	RemoveFromCart(ctx context.Context, perfumeID int64) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	ExecutePendingAction(ctx context.Context) error
	CancelAuthGate()
	GateOpen() bool
	Notice() string
	ClearNotice()
	IsOutOfStock(perfumeID int64) bool
	TotalItems() int
}

type App struct {
	config  *config.Config
	api     api.Client
	session sessionIface
	cart    cartIface
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := localstore.InitDatabase(ctx, c.DataFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}
	store := localstore.New(db)

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	sess := session.New(apiClient, store)

	var opts []cart.Option
	if c.RollbackOnConflict {
		opts = append(opts, cart.WithRollbackOnConflict())
	}
	crt := cart.NewCoordinator(apiClient, sess, opts...)

	return &App{config: c, api: apiClient, session: sess, cart: crt, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.Current(); u != nil {
		s = u.Username
	} else {
		s = "guest"
	}
	if n := a.cart.TotalItems(); n > 0 {
		s = fmt.Sprintf("%s, %d in cart", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}

// flushNotice prints and dismisses the cart's one-shot notification, if any.
func (a *App) flushNotice() {
	if msg := a.cart.Notice(); msg != "" {
		printlnFn(msg)
		a.cart.ClearNotice()
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	a.session.Probe(ctx)
	if u := a.session.Current(); u != nil {
		log.Printf("Welcome back, %s", u.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
