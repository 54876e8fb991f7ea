// Package session holds the client's view of who is logged in: the current
// user plus the token lifecycle around login, register, and logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shelfmate/shelfmate/internal/api"
)

// ErrInvalidCredentials indicates the server rejected a login attempt
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthAPI is the slice of the API client the session store uses
type AuthAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	CurrentUser(ctx context.Context) (*api.User, error)
}

// TokenStore is the persisted single-slot token the session reads and writes
type TokenStore interface {
	Token() string
	SaveToken(token string) error
	ClearToken() error
}

// Store tracks the authenticated user. The user is non-nil exactly when the
// most recent session-establishing call accepted the stored token.
type Store struct {
	client AuthAPI
	tokens TokenStore

	mu      sync.RWMutex
	user    *api.User
	loading bool

	bootstrapOnce sync.Once
}

// New creates a session store; loading stays true until Bootstrap completes
func New(client AuthAPI, tokens TokenStore) *Store {
	return &Store{
		client:  client,
		tokens:  tokens,
		loading: true,
	}
}

// Bootstrap restores the session from the persisted token. It runs at most
// once per process. Without a stored token it finishes unauthenticated
// without issuing any request. A rejected token is cleared. Loading is
// cleared in every outcome.
func (s *Store) Bootstrap(ctx context.Context) error {
	var err error
	s.bootstrapOnce.Do(func() {
		err = s.bootstrap(ctx)
	})
	return err
}

func (s *Store) bootstrap(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if s.tokens.Token() == "" {
		return nil
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			// Expired or revoked token: drop it and stay unauthenticated
			if clearErr := s.tokens.ClearToken(); clearErr != nil {
				return fmt.Errorf("failed to clear rejected token: %w", clearErr)
			}
			return nil
		}
		return fmt.Errorf("session restore failed: %w", err)
	}

	s.setUser(user)
	return nil
}

// Login exchanges credentials for a token, persists it, and loads the user
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := s.tokens.SaveToken(token.AccessToken); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			_ = s.tokens.ClearToken()
		}
		return err
	}

	s.setUser(user)
	return nil
}

// Register creates the account and then logs in with the same credentials
func (s *Store) Register(ctx context.Context, username, email, fullName, password string) error {
	_, err := s.client.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: password,
	})
	if err != nil {
		return err
	}

	return s.Login(ctx, email, password)
}

// Logout clears the persisted token and the in-memory user. No server
// round-trip is required.
func (s *Store) Logout() error {
	err := s.tokens.ClearToken()
	s.setUser(nil)
	return err
}

// User returns the current user, or nil when unauthenticated
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user is logged in
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// IsAdmin reports whether the current user has the admin flag
func (s *Store) IsAdmin() bool {
	user := s.User()
	return user != nil && user.IsAdmin
}

// Loading reports whether Bootstrap has not yet completed
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setUser(user *api.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
