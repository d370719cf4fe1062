package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context, filter string) error
	Show(ctx context.Context) error
	ShowCart(ctx context.Context) error
	Add(ctx context.Context) error
	SetQuantity(ctx context.Context) error
	Remove(ctx context.Context) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
	AddPerfume(ctx context.Context) error
	EditPerfume(ctx context.Context) error
	RemovePerfume(ctx context.Context) error
	UploadImage(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the ScentShop CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           - show available commands
//	  - list | l       - browse the catalog (optional brand/type filter text)
//	  - show           - show a single perfume (interactive ID prompt)
//	  - cart           - show the cart
//	  - add            - add a perfume to the cart
//	  - qty            - change a line quantity
//	  - remove         - remove a line
//	  - clear          - empty the cart
//	  - checkout       - place an order
//	  - exit | quit    - leave the program
//
//	Not logged in:
//	  - register       - create an account
//	  - login          - authenticate
//
//	Logged in:
//	  - whoami         - show the current user
//	  - orders         - list past orders
//	  - addperfume, editperfume, rmperfume, upload - catalog management
//	  - logout         - log out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, cart, add, qty, remove, clear, checkout, orders, whoami, addperfume, editperfume, rmperfume, upload, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, show, cart, add, qty, remove, clear, checkout, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "l", "list":
			_ = a.List(ctx, strings.Join(parts[1:], " "))

		case "show":
			_ = a.Show(ctx)

		case "cart":
			_ = a.ShowCart(ctx)

		case "add":
			_ = a.Add(ctx)

		case "qty":
			_ = a.SetQuantity(ctx)

		case "remove":
			_ = a.Remove(ctx)

		case "clear":
			_ = a.ClearCart(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "orders":
			_ = a.Orders(ctx)

		case "addperfume":
			_ = a.AddPerfume(ctx)

		case "editperfume":
			_ = a.EditPerfume(ctx)

		case "rmperfume":
			_ = a.RemovePerfume(ctx)

		case "upload":
			_ = a.UploadImage(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
