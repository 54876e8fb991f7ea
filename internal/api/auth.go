package api

import (
	"context"
	"net/url"
)

// Register creates a new account. Duplicate username/email or a weak
// password surfaces as a *ValidationError.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. Rejected credentials
// surface as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.post(ctx, "/auth/login", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser fetches the account the attached token belongs to
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsers finds accounts by username prefix, for invitations
func (c *Client) SearchUsers(ctx context.Context, username string) ([]User, error) {
	q := url.Values{}
	q.Set("username", username)

	var users []User
	if err := c.get(ctx, "/auth/users/search", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}
