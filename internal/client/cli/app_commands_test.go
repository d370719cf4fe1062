package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/dkovalev7/scentshop/internal/client/api"
	"github.com/dkovalev7/scentshop/internal/client/cart"
	"github.com/dkovalev7/scentshop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTextInputs replaces getSimpleText with a stub returning the given
// values in order. The restore function must be deferred.
func stubTextInputs(t *testing.T, values ...string) func() {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(values) {
			return "", errors.New("no more stubbed inputs")
		}
		v := values[i]
		i++
		return v, nil
	}
	return func() { getSimpleText = orig }
}

func stubPassword(t *testing.T, pw []byte) func() {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	return func() { getPassword = orig }
}

func capturePrintln(t *testing.T) (*[]string, func()) {
	t.Helper()
	orig := printlnFn
	var lines []string
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(args...))
		return 0, nil
	}
	return &lines, func() { printlnFn = orig }
}

// fakeSession implements sessionIface.
type fakeSession struct {
	loggedIn bool
	user     *models.User
	loginErr error
}

func (f *fakeSession) Probe(ctx context.Context) {}
func (f *fakeSession) IsAuthenticated() bool     { return f.loggedIn }
func (f *fakeSession) Current() *models.User     { return f.user }
func (f *fakeSession) Login(ctx context.Context, email string, password []byte) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	f.user = &models.User{ID: 1, Username: "kate", Email: email}
	return nil
}
func (f *fakeSession) Register(ctx context.Context, username, email string, password []byte) error {
	f.loggedIn = true
	f.user = &models.User{ID: 1, Username: username, Email: email}
	return nil
}
func (f *fakeSession) Logout(ctx context.Context) error {
	f.loggedIn = false
	f.user = nil
	return nil
}

// fakeCart implements cartIface and records calls.
type fakeCart struct {
	state        cart.State
	gateAfterAdd bool
	notice       string
	addErr       error
	checkoutRet  *models.Order

	calls []string
}

func (f *fakeCart) State() cart.State { return f.state }
func (f *fakeCart) AddToCart(ctx context.Context, p models.Perfume) error {
	f.calls = append(f.calls, "add")
	if f.gateAfterAdd {
		f.state.Gate = cart.AuthGate{Open: true, Kind: cart.ActionAddToCart, Pending: &p}
	}
	return f.addErr
}
func (f *fakeCart) UpdateQuantity(ctx context.Context, id int64, qty int) error {
	f.calls = append(f.calls, fmt.Sprintf("qty:%d:%d", id, qty))
	return nil
}
func (f *fakeCart) RemoveFromCart(ctx context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("remove:%d", id))
	return nil
}
func (f *fakeCart) ClearCart(ctx context.Context) error {
	f.calls = append(f.calls, "clear")
	return nil
}
func (f *fakeCart) Checkout(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	f.calls = append(f.calls, "checkout")
	return f.checkoutRet, nil
}
func (f *fakeCart) ExecutePendingAction(ctx context.Context) error {
	f.calls = append(f.calls, "execute")
	f.state.Gate = cart.AuthGate{}
	return nil
}
func (f *fakeCart) CancelAuthGate() {
	f.calls = append(f.calls, "cancel")
	f.state.Gate = cart.AuthGate{}
}
func (f *fakeCart) GateOpen() bool { return f.state.Gate.Open }
func (f *fakeCart) Notice() string { return f.notice }
func (f *fakeCart) ClearNotice()   { f.notice = "" }
func (f *fakeCart) IsOutOfStock(id int64) bool {
	_, ok := f.state.OutOfStock[id]
	return ok
}
func (f *fakeCart) TotalItems() int {
	n := 0
	for _, it := range f.state.Items {
		n += it.Quantity
	}
	return n
}

// fakeCatalogAPI stubs only the api.Client methods the CLI commands use;
// everything else panics via the embedded nil interface.
type fakeCatalogAPI struct {
	api.Client

	perfume  *models.Perfume
	perfumes []models.Perfume
	orders   []models.Order
}

func (f *fakeCatalogAPI) ListPerfumes(ctx context.Context, skip, limit int) ([]models.Perfume, error) {
	return f.perfumes, nil
}

func (f *fakeCatalogAPI) GetPerfume(ctx context.Context, id int64) (*models.Perfume, error) {
	if f.perfume == nil {
		return nil, errors.New("not found")
	}
	return f.perfume, nil
}

func (f *fakeCatalogAPI) ListOrders(ctx context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func TestAdd_GatedOffersLoginAndReplays(t *testing.T) {
	_, restorePrint := capturePrintln(t)
	defer restorePrint()
	// Inputs: perfume id, "log in now?", email.
	defer stubTextInputs(t, "7", "y", "kate@example.com")()
	defer stubPassword(t, []byte("pw"))()

	sess := &fakeSession{}
	crt := &fakeCart{gateAfterAdd: true}
	a := &App{
		api:     &fakeCatalogAPI{perfume: &models.Perfume{ID: 7, Name: "No. 5", Price: 100}},
		session: sess,
		cart:    crt,
	}

	require.NoError(t, a.Add(context.Background()))

	assert.Equal(t, []string{"add", "execute"}, crt.calls)
	assert.True(t, sess.loggedIn)
	assert.False(t, crt.GateOpen())
}

func TestAdd_DeclinedLoginCancelsGate(t *testing.T) {
	_, restorePrint := capturePrintln(t)
	defer restorePrint()
	defer stubTextInputs(t, "7", "n")()

	crt := &fakeCart{gateAfterAdd: true}
	a := &App{
		api:     &fakeCatalogAPI{perfume: &models.Perfume{ID: 7}},
		session: &fakeSession{},
		cart:    crt,
	}

	require.NoError(t, a.Add(context.Background()))

	assert.Equal(t, []string{"add", "cancel"}, crt.calls)
	assert.False(t, crt.GateOpen())
}

func TestAdd_FailedLoginCancelsGate(t *testing.T) {
	_, restorePrint := capturePrintln(t)
	defer restorePrint()
	defer stubTextInputs(t, "7", "y", "kate@example.com")()
	defer stubPassword(t, []byte("pw"))()

	crt := &fakeCart{gateAfterAdd: true}
	a := &App{
		api:     &fakeCatalogAPI{perfume: &models.Perfume{ID: 7}},
		session: &fakeSession{loginErr: errors.New("wrong password")},
		cart:    crt,
	}

	require.Error(t, a.Add(context.Background()))
	assert.Equal(t, []string{"add", "cancel"}, crt.calls)
}

func TestAdd_FlushesStockNotice(t *testing.T) {
	lines, restorePrint := capturePrintln(t)
	defer restorePrint()
	defer stubTextInputs(t, "7")()

	crt := &fakeCart{notice: cart.OutOfStockNotice}
	a := &App{
		api:     &fakeCatalogAPI{perfume: &models.Perfume{ID: 7}},
		session: &fakeSession{loggedIn: true},
		cart:    crt,
	}

	require.NoError(t, a.Add(context.Background()))

	assert.Empty(t, crt.notice, "notice dismissed after display")
	joined := fmt.Sprint(*lines)
	assert.Contains(t, joined, cart.OutOfStockNotice)
}

func TestAdd_BadIDDoesNotCallAPI(t *testing.T) {
	_, restorePrint := capturePrintln(t)
	defer restorePrint()
	defer stubTextInputs(t, "abc")()

	crt := &fakeCart{}
	a := &App{api: &fakeCatalogAPI{}, session: &fakeSession{}, cart: crt}

	require.Error(t, a.Add(context.Background()))
	assert.Empty(t, crt.calls)
}

func TestSetQuantity_DelegatesToCart(t *testing.T) {
	_, restorePrint := capturePrintln(t)
	defer restorePrint()
	defer stubTextInputs(t, "3", "5")()

	crt := &fakeCart{}
	a := &App{session: &fakeSession{loggedIn: true}, cart: crt}

	require.NoError(t, a.SetQuantity(context.Background()))
	assert.Equal(t, []string{"qty:3:5"}, crt.calls)
}

func TestCheckout_PrintsPlacedOrder(t *testing.T) {
	lines, restorePrint := capturePrintln(t)
	defer restorePrint()
	defer stubTextInputs(t, "+371 20000000")()

	crt := &fakeCart{
		state:       cart.State{Items: []models.CartItem{{Perfume: models.Perfume{ID: 1, Price: 50}, Quantity: 2}}},
		checkoutRet: &models.Order{ID: 42, TotalAmount: 100, Status: "pending"},
	}
	a := &App{
		session: &fakeSession{loggedIn: true, user: &models.User{Username: "kate", Email: "k@example.com"}},
		cart:    crt,
	}

	require.NoError(t, a.Checkout(context.Background()))
	joined := fmt.Sprint(*lines)
	assert.Contains(t, joined, "Order 42")
}

func TestList_FiltersByBrandAndType(t *testing.T) {
	lines, restorePrint := capturePrintln(t)
	defer restorePrint()

	a := &App{
		api: &fakeCatalogAPI{perfumes: []models.Perfume{
			{ID: 1, Brand: "Chanel", Name: "No. 5", Type: "edp", Price: 100},
			{ID: 2, Brand: "Dior", Name: "Sauvage", Type: "edt", Price: 80},
		}},
		session: &fakeSession{},
		cart:    &fakeCart{},
	}

	require.NoError(t, a.List(context.Background(), "chanel"))
	joined := fmt.Sprint(*lines)
	assert.Contains(t, joined, "No. 5")
	assert.NotContains(t, joined, "Sauvage")

	*lines = (*lines)[:0]
	require.NoError(t, a.List(context.Background(), "edt"))
	joined = fmt.Sprint(*lines)
	assert.Contains(t, joined, "Sauvage")
	assert.NotContains(t, joined, "No. 5")

	*lines = (*lines)[:0]
	require.NoError(t, a.List(context.Background(), ""))
	joined = fmt.Sprint(*lines)
	assert.Contains(t, joined, "No. 5")
	assert.Contains(t, joined, "Sauvage")
}

func TestOrders_PrintsHistory(t *testing.T) {
	lines, restorePrint := capturePrintln(t)
	defer restorePrint()

	a := &App{
		api:     &fakeCatalogAPI{orders: []models.Order{{ID: 7, TotalAmount: 30, Status: "paid"}}},
		session: &fakeSession{loggedIn: true},
		cart:    &fakeCart{},
	}

	require.NoError(t, a.Orders(context.Background()))
	joined := fmt.Sprint(*lines)
	assert.Contains(t, joined, "[7]")
}
