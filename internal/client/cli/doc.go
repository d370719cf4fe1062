// Package cli provides the interactive ScentShop command-line storefront.
//
// It wires configuration, local token storage, the REST API client, the
// session and the cart coordinator into an interactive REPL. Typical flow:
// probe the stored session, browse the catalog, manage the cart and check
// out; anonymous cart actions are deferred behind a login prompt and
// replayed after authentication.
//
// Key features:
//   - Register / Login / Logout with persisted sessions
//   - Browse and inspect the perfume catalog
//   - Cart management with optimistic adds and stock-conflict notices
//   - Checkout and order history
//   - Admin catalog management with presigned image uploads
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
