// Package session owns the client's belief about the current authenticated
// identity. It is the only writer of that state; consumers (the cart
// coordinator, the CLI) read it or subscribe to transitions.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkovalev7/scentshop/internal/client/api"
	"github.com/dkovalev7/scentshop/internal/client/models"
)

// Status is the session lifecycle state.
type Status int

const (
	// StatusUnknown holds from process start until the one-time identity
	// probe resolves.
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// TokenStore persists the token pair between runs. Failures are treated as
// cache misses: they never fail an auth operation.
type TokenStore interface {
	SaveTokens(ctx context.Context, pair models.TokenPair) error
	LoadTokens(ctx context.Context) (models.TokenPair, error)
	ClearTokens(ctx context.Context) error
}

// Session resolves and tracks the authenticated user.
//
// State transitions happen only inside setState; listeners registered with
// OnTransition observe every status change and run outside the lock, so they
// may call back into the session.
type Session struct {
	api   api.Client
	store TokenStore

	mu        sync.Mutex
	status    Status
	user      *models.User
	listeners []func(Status)
}

func New(client api.Client, store TokenStore) *Session {
	return &Session{api: client, store: store, status: StatusUnknown}
}

// OnTransition registers fn to run after every status change.
func (s *Session) OnTransition(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) setState(status Status, user *models.User) {
	s.mu.Lock()
	changed := s.status != status
	s.status = status
	s.user = user
	listeners := append(([]func(Status))(nil), s.listeners...)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(status)
	}
}

// IsAuthenticated is a derived read: true iff an identity is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Current returns the authenticated user, or nil when anonymous.
func (s *Session) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Probe resolves the initial session state exactly once per process: it
// restores any persisted token pair and asks the API who we are. Every
// failure (missing tokens, network trouble, 401) resolves to anonymous;
// errors are swallowed and the probe is never retried.
func (s *Session) Probe(ctx context.Context) {
	if s.store != nil {
		if pair, err := s.store.LoadTokens(ctx); err == nil && pair.AccessToken != "" {
			s.api.SetTokens(pair)
		}
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.setState(StatusAnonymous, nil)
		return
	}
	s.setState(StatusAuthenticated, user)
}

// Login authenticates with the API and then fetches the canonical identity.
// On any failure the session is left unchanged and the error propagates.
func (s *Session) Login(ctx context.Context, email string, password []byte) error {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("identity fetch error: %w", err)
	}

	s.persistTokens(ctx, *pair)
	s.setState(StatusAuthenticated, user)
	return nil
}

// Register creates an account and resolves the identity, with the same
// contract shape as Login.
func (s *Session) Register(ctx context.Context, username, email string, password []byte) error {
	pair, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("identity fetch error: %w", err)
	}

	s.persistTokens(ctx, *pair)
	s.setState(StatusAuthenticated, user)
	return nil
}

// Logout ends the session remotely first. The session becomes anonymous only
// after the remote call succeeds; a failed logout leaves it untouched and
// propagates the error.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}

	s.api.SetTokens(models.TokenPair{})
	if s.store != nil {
		_ = s.store.ClearTokens(ctx)
	}
	s.setState(StatusAnonymous, nil)
	return nil
}

// persistTokens caches the pair locally, best effort.
func (s *Session) persistTokens(ctx context.Context, pair models.TokenPair) {
	if s.store == nil {
		return
	}
	_ = s.store.SaveTokens(ctx, pair)
}
