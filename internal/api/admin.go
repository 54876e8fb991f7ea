package api

import "context"

// ListUsers fetches all accounts; admin only
func (c *Client) ListUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := c.get(ctx, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetAdminStatus grants or revokes a user's admin flag
func (c *Client) SetAdminStatus(ctx context.Context, userID string, isAdmin bool) (*AdminUser, error) {
	body := map[string]bool{"is_admin": isAdmin}
	var user AdminUser
	if err := c.patch(ctx, "/admin/users/"+userID+"/admin", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserPassword resets a user's password
func (c *Client) SetUserPassword(ctx context.Context, userID, password string) error {
	body := map[string]string{"password": password}
	return c.patch(ctx, "/admin/users/"+userID+"/password", body, nil)
}

// SetLibraryRole changes a user's role in a library
func (c *Client) SetLibraryRole(ctx context.Context, userID, libraryID, role string) error {
	body := map[string]string{"role": role}
	return c.patch(ctx, "/admin/users/"+userID+"/libraries/"+libraryID, body, nil)
}

// RemoveUserFromLibrary detaches a user from a library
func (c *Client) RemoveUserFromLibrary(ctx context.Context, userID, libraryID string) error {
	return c.delete(ctx, "/admin/users/"+userID+"/libraries/"+libraryID)
}
