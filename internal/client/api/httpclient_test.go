package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkovalev7/scentshop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL, 2*time.Second)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestHTTPClient_BearerHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(cartEnvelope{})
	}))
	c.SetTokens(models.TokenPair{AccessToken: "abc"})

	_, err := c.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestHTTPClient_ConflictBecomesTypedError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"OUT_OF_STOCK"}`))
	}))

	err := c.AddToCart(context.Background(), 7, 1)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.OutOfStock())
}

func TestHTTPClient_ConflictOtherReason(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"version mismatch"}`))
	}))

	err := c.AddToCart(context.Background(), 7, 1)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.False(t, conflict.OutOfStock())
}

func TestHTTPClient_UnauthorizedSentinel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not auth"}`))
	}))

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_RefreshRetryOnExpiredToken(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(models.User{ID: 1, Username: "kate"})
	})
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		require.Equal(t, "refresh-1", body["refresh_token"])
		_ = json.NewEncoder(w).Encode(models.TokenPair{AccessToken: "fresh", RefreshToken: "refresh-2"})
	})

	c := newTestClient(t, mux)
	c.SetTokens(models.TokenPair{AccessToken: "stale", RefreshToken: "refresh-1"})

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kate", user.Username)
	assert.Equal(t, 2, calls, "original request retried exactly once")
	assert.Equal(t, "refresh-2", c.Tokens().RefreshToken, "pair rotated")
}

func TestHTTPClient_ExpiredWithoutRefreshToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))
	c.SetTokens(models.TokenPair{AccessToken: "stale"})

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", time.Second)
	_, err := c.GetCart(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestConflictError_OutOfStockMatching(t *testing.T) {
	tests := []struct {
		reason string
		want   bool
	}{
		{"OUT_OF_STOCK", true},
		{"out_of_stock", true},
		{"item is OUT OF STOCK", true},
		{"version mismatch", false},
		{"", false},
	}
	for _, tc := range tests {
		err := &ConflictError{Reason: tc.reason}
		assert.Equal(t, tc.want, err.OutOfStock(), tc.reason)
	}
}

func TestMapError_FallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	_, err := c.GetCart(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Contains(t, err.Error(), "502")
}
