// Package models defines the server-side domain entities backed by Postgres.
package models

import "time"

// User is an account row. The password is never stored: Salt plus Verifier
// (see internal/cryptox) stand in for it.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Salt      []byte    `json:"-"`
	Verifier  []byte    `json:"-"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"-"`
}
