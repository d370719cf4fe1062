package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dkovalev7/scentshop/internal/client/models"
)

// Checkout places an order from the current cart. Anonymous sessions are
// offered a login first; after a successful login the user re-runs checkout
// with the restored cart.
func (a *App) Checkout(ctx context.Context) error {
	if len(a.cart.State().Items) == 0 && a.isLoggedIn() {
		printlnFn("Your cart is empty")
		return nil
	}

	req := &models.OrderRequest{}
	if u := a.session.Current(); u != nil {
		req.UserEmail = u.Email
		req.UserName = u.Username
	}

	if a.isLoggedIn() {
		phone, err := getSimpleText(a.reader, "Enter contact phone", os.Stdout)
		if err != nil {
			return err
		}
		req.UserPhone = phone
	}

	order, err := a.cart.Checkout(ctx, req)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if a.cart.GateOpen() {
		if err := a.resolveGate(ctx); err != nil {
			return err
		}
		if a.isLoggedIn() {
			printlnFn("You are logged in now; run 'checkout' again to place the order.")
		}
		return nil
	}

	printlnFn(fmt.Sprintf("Order %d placed, total %.2f, status %s", order.ID, order.TotalAmount, order.Status))
	return nil
}

// Orders prints the order history.
func (a *App) Orders(ctx context.Context) error {
	orders, err := a.api.ListOrders(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(orders) == 0 {
		printlnFn("No orders yet")
		return nil
	}

	for _, o := range orders {
		printlnFn(fmt.Sprintf("[%d] %s - %.2f (%s, %d items)",
			o.ID, o.CreatedAt.Format("2006-01-02"), o.TotalAmount, o.Status, len(o.Items)))
	}
	return nil
}
