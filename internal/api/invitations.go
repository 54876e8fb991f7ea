package api

import "context"

// CreateInvitation invites a user to a library by username
func (c *Client) CreateInvitation(ctx context.Context, libraryID string, req InvitationCreateRequest) (*Invitation, error) {
	var inv Invitation
	if err := c.post(ctx, "/invitations/libraries/"+libraryID+"/invite", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListPendingInvitations fetches invitations awaiting the caller's response
func (c *Client) ListPendingInvitations(ctx context.Context) ([]Invitation, error) {
	var invs []Invitation
	if err := c.get(ctx, "/invitations/pending", nil, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// AcceptInvitation joins the library the invitation proposes. Accepting an
// already-responded invitation is rejected server-side; callers tolerate
// that as a no-op.
func (c *Client) AcceptInvitation(ctx context.Context, id string) error {
	return c.post(ctx, "/invitations/"+id+"/accept", nil, nil)
}

// DeclineInvitation declines a pending invitation
func (c *Client) DeclineInvitation(ctx context.Context, id string) error {
	return c.post(ctx, "/invitations/"+id+"/decline", nil, nil)
}

// ListLibraryInvitations fetches the invitations sent for a library
func (c *Client) ListLibraryInvitations(ctx context.Context, libraryID string) ([]Invitation, error) {
	var invs []Invitation
	if err := c.get(ctx, "/invitations/libraries/"+libraryID+"/invitations", nil, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// CancelInvitation withdraws a pending invitation
func (c *Client) CancelInvitation(ctx context.Context, id string) error {
	return c.delete(ctx, "/invitations/"+id)
}
