package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
)

// ShowCart prints the current cart lines and total.
func (a *App) ShowCart(ctx context.Context) error {
	s := a.cart.State()

	if len(s.Items) == 0 {
		printlnFn("Your cart is empty")
		return nil
	}

	for _, it := range s.Items {
		line := fmt.Sprintf("[%d] %s - %s x%d = %.2f",
			it.Perfume.ID, it.Perfume.Brand, it.Perfume.Name, it.Quantity, it.LineTotal())
		if a.cart.IsOutOfStock(it.Perfume.ID) {
			line += " (out of stock)"
		}
		printlnFn(line)
	}
	printlnFn(fmt.Sprintf("Total: %.2f", s.Total))
	return nil
}

// Add prompts for a perfume id and adds one unit to the cart. When the
// session is anonymous the action is deferred behind the auth gate and the
// user is offered an immediate login.
func (a *App) Add(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	p, err := a.api.GetPerfume(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := a.cart.AddToCart(ctx, *p); err != nil {
		log.Println(err.Error())
		return err
	}

	if a.cart.GateOpen() {
		return a.resolveGate(ctx)
	}

	a.flushNotice()
	return nil
}

// SetQuantity prompts for a perfume id and a new quantity. Zero removes the
// line.
func (a *App) SetQuantity(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	text, err := getSimpleText(a.reader, "Enter quantity", os.Stdout)
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(text)
	if err != nil || qty < 0 {
		printlnFn("Not a valid quantity:", text)
		return err
	}

	if err := a.cart.UpdateQuantity(ctx, id, qty); err != nil {
		log.Println(err.Error())
		return err
	}
	return nil
}

// Remove prompts for a perfume id and removes its line.
func (a *App) Remove(ctx context.Context) error {
	id, err := a.promptID("Enter perfume id")
	if err != nil {
		return err
	}

	if err := a.cart.RemoveFromCart(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}
	return nil
}

// ClearCart empties the cart.
func (a *App) ClearCart(ctx context.Context) error {
	if err := a.cart.ClearCart(ctx); err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn("Cart cleared")
	return nil
}
