package models

import "time"

// RefreshToken is a server-stored opaque token. Rotation deletes the row and
// inserts a fresh one.
type RefreshToken struct {
	ID      int64
	UserID  int64
	Token   string
	Expires time.Time
}
