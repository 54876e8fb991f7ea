package api

import "context"

// ListBookClubs fetches the clubs visible to the caller
func (c *Client) ListBookClubs(ctx context.Context) ([]BookClubSummary, error) {
	var clubs []BookClubSummary
	if err := c.get(ctx, "/book-clubs", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// CreateBookClub creates a club owned by the caller
func (c *Client) CreateBookClub(ctx context.Context, req BookClubCreateRequest) (*BookClub, error) {
	var club BookClub
	if err := c.post(ctx, "/book-clubs", req, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

// GetBookClub fetches the full club view: members, progress, comments, history
func (c *Client) GetBookClub(ctx context.Context, clubID string) (*BookClubDetail, error) {
	var detail BookClubDetail
	if err := c.get(ctx, "/book-clubs/"+clubID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateBookClub patches a club
func (c *Client) UpdateBookClub(ctx context.Context, clubID string, req BookClubUpdateRequest) (*BookClub, error) {
	var club BookClub
	if err := c.patch(ctx, "/book-clubs/"+clubID, req, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

// AddClubMember adds a user to a club
func (c *Client) AddClubMember(ctx context.Context, clubID string, req ClubMemberInput) (*ClubMember, error) {
	var member ClubMember
	if err := c.post(ctx, "/book-clubs/"+clubID+"/members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateClubMember changes a member's role
func (c *Client) UpdateClubMember(ctx context.Context, clubID, userID string, req ClubMemberUpdateRequest) (*ClubMember, error) {
	var member ClubMember
	if err := c.patch(ctx, "/book-clubs/"+clubID+"/members/"+userID, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveClubMember removes a user from a club
func (c *Client) RemoveClubMember(ctx context.Context, clubID, userID string) error {
	return c.delete(ctx, "/book-clubs/"+clubID+"/members/"+userID)
}

// PutProgress upserts the caller's progress in the club's current book
func (c *Client) PutProgress(ctx context.Context, clubID string, req ProgressInput) (*Progress, error) {
	var progress Progress
	if err := c.put(ctx, "/book-clubs/"+clubID+"/progress", req, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListComments fetches a club's discussion, ordered by creation time
func (c *Client) ListComments(ctx context.Context, clubID string) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, "/book-clubs/"+clubID+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a page-anchored comment
func (c *Client) CreateComment(ctx context.Context, clubID string, req CommentInput) (*Comment, error) {
	var comment Comment
	if err := c.post(ctx, "/book-clubs/"+clubID+"/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
