package api

import "context"

// ListLibraries fetches the libraries the caller belongs to
func (c *Client) ListLibraries(ctx context.Context) ([]Library, error) {
	var libs []Library
	if err := c.get(ctx, "/libraries", nil, &libs); err != nil {
		return nil, err
	}
	return libs, nil
}

// CreateLibrary creates a library owned by the caller
func (c *Client) CreateLibrary(ctx context.Context, req LibraryCreateRequest) (*Library, error) {
	var lib Library
	if err := c.post(ctx, "/libraries", req, &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// GetLibrary fetches one library by id
func (c *Client) GetLibrary(ctx context.Context, id string) (*Library, error) {
	var lib Library
	if err := c.get(ctx, "/libraries/"+id, nil, &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// UpdateLibrary patches a library
func (c *Client) UpdateLibrary(ctx context.Context, id string, req LibraryUpdateRequest) (*Library, error) {
	var lib Library
	if err := c.patch(ctx, "/libraries/"+id, req, &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// DeleteLibrary removes a library
func (c *Client) DeleteLibrary(ctx context.Context, id string) error {
	return c.delete(ctx, "/libraries/"+id)
}

// ListMembers fetches a library's membership roster
func (c *Client) ListMembers(ctx context.Context, libraryID string) ([]LibraryMember, error) {
	var members []LibraryMember
	if err := c.get(ctx, "/libraries/"+libraryID+"/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a user to a library directly
func (c *Client) AddMember(ctx context.Context, libraryID string, req MemberCreateRequest) (*LibraryMember, error) {
	var member LibraryMember
	if err := c.post(ctx, "/libraries/"+libraryID+"/members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember changes a member's role
func (c *Client) UpdateMember(ctx context.Context, libraryID, userID string, req MemberUpdateRequest) (*LibraryMember, error) {
	var member LibraryMember
	if err := c.patch(ctx, "/libraries/"+libraryID+"/members/"+userID, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember removes a user from a library
func (c *Client) RemoveMember(ctx context.Context, libraryID, userID string) error {
	return c.delete(ctx, "/libraries/"+libraryID+"/members/"+userID)
}
