package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable marks transport-level failures (connection refused,
	// timeouts) as opposed to API-level rejections.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned for 401 responses that survive the
	// transparent token refresh.
	ErrUnauthorized = errors.New("unauthorized")
)

// outOfStockMarker is the detail value the API uses for stock conflicts.
const outOfStockMarker = "OUT_OF_STOCK"

// ConflictError is an API rejection with HTTP status 409. The Reason carries
// the response body's detail field. Conflict classification happens here,
// once, at the network boundary; callers only use OutOfStock.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// OutOfStock reports whether the conflict signals insufficient stock.
// The match is case-insensitive and tolerates both the "OUT_OF_STOCK"
// marker and a spelled-out "OUT OF STOCK" variant.
func (e *ConflictError) OutOfStock() bool {
	reason := strings.ToUpper(e.Reason)
	return strings.Contains(reason, outOfStockMarker) ||
		strings.Contains(reason, strings.ReplaceAll(outOfStockMarker, "_", " "))
}
