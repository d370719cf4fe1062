package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dkovalev7/scentshop/internal/client/api"
	"github.com/dkovalev7/scentshop/internal/client/models"
	"github.com/dkovalev7/scentshop/internal/client/session"
)

// Coordinator owns the cart state and mediates between the UI, the session
// and the remote API.
//
// Concurrency model: every local transition is one reduce call under mu, so
// transitions are atomic with respect to each other, while remote calls run
// outside the lock and may resolve in any order. A resolution is always
// applied to whatever the state is at that moment; there is no cancellation
// and no request de-duplication (two rapid adds for the same product both
// increment and both reach the server).
type Coordinator struct {
	api     api.Client
	session *session.Session

	// rollbackOnConflict undoes the optimistic increment when the server
	// rejects an add with a stock conflict. Off by default: the user keeps
	// the line and decides what to do.
	rollbackOnConflict bool

	mu    sync.Mutex
	state State
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRollbackOnConflict makes a stock-conflicted add undo its optimistic
// increment instead of leaving the line as-is.
func WithRollbackOnConflict() Option {
	return func(c *Coordinator) { c.rollbackOnConflict = true }
}

// NewCoordinator wires the coordinator to the session: cart contents follow
// the session's transitions (cleared on anonymous, reloaded on
// authenticated).
func NewCoordinator(client api.Client, sess *session.Session, opts ...Option) *Coordinator {
	c := &Coordinator{api: client, session: sess, state: newState()}
	for _, opt := range opts {
		opt(c)
	}
	sess.OnTransition(c.onSessionTransition)
	return c
}

func (c *Coordinator) dispatch(actions ...action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range actions {
		c.state = reduce(c.state, a)
	}
}

// State returns a snapshot. The reducer copies on write, so the snapshot is
// safe to read after further transitions.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) onSessionTransition(status session.Status) {
	switch status {
	case session.StatusAnonymous:
		// Lines and advisories are dropped together; the gate, if open,
		// stays open (it is already waiting for a login).
		c.dispatch(clearCart{})
	case session.StatusAuthenticated:
		c.Reload(context.Background())
	}
}

// Reload replaces local lines with the remote cart. On failure the lines
// held before the reload are kept: stale-but-available beats blocking.
func (c *Coordinator) Reload(ctx context.Context) {
	c.dispatch(setLoading{true})
	items, err := c.api.GetCart(ctx)
	if err != nil {
		c.dispatch(setLoading{false})
		return
	}
	c.dispatch(setItems{items}, setLoading{false})
}

// AddToCart adds one unit of the product. For anonymous sessions it opens
// the auth gate with the product as deferred payload and issues no remote
// call. For authenticated sessions the local line is incremented
// optimistically before the remote add; a stock conflict keeps the
// increment (unless rollback is configured), marks the advisory and sets
// the one-shot notice without failing the call. Any other error propagates
// with the optimistic increment intentionally left in place.
func (c *Coordinator) AddToCart(ctx context.Context, perfume models.Perfume) error {
	if !c.session.IsAuthenticated() {
		p := perfume
		c.dispatch(openGate{kind: ActionAddToCart, perfume: &p})
		return nil
	}

	c.dispatch(addItem{perfume})

	err := c.api.AddToCart(ctx, perfume.ID, 1)
	if err == nil {
		// Stock may have been replenished since the last conflict.
		c.dispatch(unmarkOutOfStock{perfume.ID})
		return nil
	}

	var conflict *api.ConflictError
	if errors.As(err, &conflict) && conflict.OutOfStock() {
		if c.rollbackOnConflict {
			c.dispatch(undoAddItem{perfume.ID})
		}
		c.dispatch(markOutOfStock{perfume.ID}, setNotice{OutOfStockNotice})
		return nil
	}

	return fmt.Errorf("add to cart: %w", err)
}

// UpdateQuantity sets the line quantity. Zero is equivalent to removal.
// Unlike the add path there is no optimistic update: the remote call goes
// first and local state changes only on success.
func (c *Coordinator) UpdateQuantity(ctx context.Context, perfumeID int64, quantity int) error {
	if quantity == 0 {
		return c.RemoveFromCart(ctx, perfumeID)
	}

	if err := c.api.UpdateQuantity(ctx, perfumeID, quantity); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	c.dispatch(setQuantity{perfumeID: perfumeID, quantity: quantity})
	return nil
}

// RemoveFromCart deletes the line remotely, then locally.
func (c *Coordinator) RemoveFromCart(ctx context.Context, perfumeID int64) error {
	if err := c.api.RemoveFromCart(ctx, perfumeID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	c.dispatch(removeItem{perfumeID})
	return nil
}

// ClearCart empties the cart remotely, then locally (advisories included).
func (c *Coordinator) ClearCart(ctx context.Context) error {
	if err := c.api.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	c.dispatch(clearCart{})
	return nil
}

// Checkout places an order from the current cart. Anonymous sessions open
// the auth gate with kind checkout (no payload) and no remote call is made;
// callers detect this via GateOpen. On success the cart is cleared locally
// (the server clears its copy while creating the order).
func (c *Coordinator) Checkout(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	if !c.session.IsAuthenticated() {
		c.dispatch(openGate{kind: ActionCheckout})
		return nil, nil
	}

	order, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	c.dispatch(clearCart{})
	return order, nil
}

// ExecutePendingAction replays the deferred action exactly once after the
// user has authenticated. The gate is consumed atomically before the replay
// runs, so a second call is a no-op and the gate never reopens on failure.
// Only add-to-cart carries a payload; a pending checkout simply closes the
// gate and lets the caller restart the checkout flow.
func (c *Coordinator) ExecutePendingAction(ctx context.Context) error {
	if !c.session.IsAuthenticated() {
		return nil
	}

	c.mu.Lock()
	gate := c.state.Gate
	if !gate.Open {
		c.mu.Unlock()
		return nil
	}
	c.state = reduce(c.state, closeGate{})
	c.mu.Unlock()

	if gate.Kind == ActionAddToCart && gate.Pending != nil {
		return c.AddToCart(ctx, *gate.Pending)
	}
	return nil
}

// CancelAuthGate closes the gate and discards the deferred payload without
// any remote call.
func (c *Coordinator) CancelAuthGate() {
	c.dispatch(closeGate{})
}

// GateOpen reports whether an action is waiting on authentication.
func (c *Coordinator) GateOpen() bool {
	return c.State().Gate.Open
}

// Notice returns the pending one-shot notification, empty when none.
func (c *Coordinator) Notice() string {
	return c.State().Notice
}

// ClearNotice dismisses the notification. The notice never expires on its
// own; display-layer timeouts are the consumer's business.
func (c *Coordinator) ClearNotice() {
	c.dispatch(clearNotice{})
}

// IsOutOfStock reports whether the server recently rejected this product
// for insufficient stock.
func (c *Coordinator) IsOutOfStock(perfumeID int64) bool {
	s := c.State()
	_, ok := s.OutOfStock[perfumeID]
	return ok
}

// TotalItems is the number of units across all lines.
func (c *Coordinator) TotalItems() int {
	s := c.State()
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
