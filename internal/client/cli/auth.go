package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dkovalev7/scentshop/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username, email and password and attempts
// to create a new account.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning. Any I/O or service error is returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, userName, email, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the session transitions to authenticated, which makes the cart
// coordinator load the remote cart. A deferred cart action, if one is
// waiting behind the auth gate, is replayed by the caller, not here.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout ends the session remotely. A failed remote logout leaves the
// session (and the cart) untouched.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessful: %s", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current identity.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.Current()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	return nil
}

// resolveGate runs when a cart action was deferred for authentication. It
// offers an immediate login; on success the pending action is replayed
// exactly once, otherwise the gate is cancelled and the action discarded.
func (a *App) resolveGate(ctx context.Context) error {
	printlnFn("Please log in to continue.")

	answer, err := getSimpleText(a.reader, "Log in now? (y/n)", os.Stdout)
	if err != nil {
		a.cart.CancelAuthGate()
		return err
	}
	if answer != "y" && answer != "yes" {
		a.cart.CancelAuthGate()
		return nil
	}

	if err := a.Login(ctx); err != nil {
		a.cart.CancelAuthGate()
		return err
	}

	if err := a.cart.ExecutePendingAction(ctx); err != nil {
		log.Printf("Could not finish the pending action: %s", err.Error())
		return err
	}
	a.flushNotice()
	return nil
}
