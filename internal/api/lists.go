package api

import (
	"context"
	"net/url"
	"time"
)

// Reading list visibility levels
const (
	ListPrivate = "private"
	ListShared  = "shared"
	ListPublic  = "public"
)

// Reading list item statuses for per-member progress
const (
	ListItemNotStarted = "not_started"
	ListItemInProgress = "in_progress"
	ListItemCompleted  = "completed"
)

// ReadingList is a themed list of books, independent of any library
type ReadingList struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReadingListSummary is the listing row with counts and the caller's role
type ReadingListSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	OwnerID     string `json:"owner_id"`
	ItemCount   int    `json:"item_count"`
	MemberCount int    `json:"member_count"`
	Role        string `json:"role"`
}

// ReadingListItem is one entry on a list. Items may reference a catalog
// book or stand alone as external entries.
type ReadingListItem struct {
	ID            string    `json:"id"`
	ListID        string    `json:"list_id"`
	OrderIndex    int       `json:"order_index"`
	BookID        string    `json:"book_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	Notes         string    `json:"notes"`
	CoverImageURL string    `json:"cover_image_url"`
	ItemType      string    `json:"item_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReadingListMember is a user's membership record on a list
type ReadingListMember struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	InvitedBy string    `json:"invited_by"`
	JoinedAt  time.Time `json:"joined_at"`
}

// ReadingListProgress is the caller's status on one list item
type ReadingListProgress struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	ListItemID  string     `json:"list_item_id"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
	Notes       string     `json:"notes"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReadingListDetail is the full list view: items in order, members, and
// the caller's own progress.
type ReadingListDetail struct {
	List     ReadingList           `json:"list"`
	Items    []ReadingListItem     `json:"items"`
	Members  []ReadingListMember   `json:"members"`
	Progress []ReadingListProgress `json:"progress"`
}

// ReadingListCreateRequest creates a list
type ReadingListCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

// ReadingListUpdateRequest patches a list
type ReadingListUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

// ListItemCreateRequest adds an entry to a list. Omitting OrderIndex
// appends after the current last item.
type ListItemCreateRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	Notes      string `json:"notes,omitempty"`
	BookID     string `json:"book_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
	OrderIndex *int   `json:"order_index,omitempty"`
}

// ListItemUpdateRequest patches a list entry
type ListItemUpdateRequest struct {
	Title      *string `json:"title,omitempty"`
	Author     *string `json:"author,omitempty"`
	ISBN       *string `json:"isbn,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	OrderIndex *int    `json:"order_index,omitempty"`
}

// ListMemberInput adds a member to a list
type ListMemberInput struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// ListMemberUpdateRequest changes a list member's role
type ListMemberUpdateRequest struct {
	Role string `json:"role"`
}

// ListProgressInput upserts the caller's status on a list item
type ListProgressInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// ListReadingLists fetches the lists the caller can see, optionally
// narrowed to one visibility level.
func (c *Client) ListReadingLists(ctx context.Context, visibility string) ([]ReadingListSummary, error) {
	var q url.Values
	if visibility != "" {
		q = url.Values{"visibility": []string{visibility}}
	}

	var lists []ReadingListSummary
	if err := c.get(ctx, "/lists", q, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateReadingList creates a list owned by the caller
func (c *Client) CreateReadingList(ctx context.Context, req ReadingListCreateRequest) (*ReadingList, error) {
	var list ReadingList
	if err := c.post(ctx, "/lists", req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetReadingList fetches the full list view
func (c *Client) GetReadingList(ctx context.Context, listID string) (*ReadingListDetail, error) {
	var detail ReadingListDetail
	if err := c.get(ctx, "/lists/"+listID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateReadingList patches a list
func (c *Client) UpdateReadingList(ctx context.Context, listID string, req ReadingListUpdateRequest) (*ReadingList, error) {
	var list ReadingList
	if err := c.patch(ctx, "/lists/"+listID, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteReadingList removes a list; only the owner may do this
func (c *Client) DeleteReadingList(ctx context.Context, listID string) error {
	return c.delete(ctx, "/lists/"+listID)
}

// AddListItem adds an entry to a list
func (c *Client) AddListItem(ctx context.Context, listID string, req ListItemCreateRequest) (*ReadingListItem, error) {
	var item ReadingListItem
	if err := c.post(ctx, "/lists/"+listID+"/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateListItem patches a list entry
func (c *Client) UpdateListItem(ctx context.Context, listID, itemID string, req ListItemUpdateRequest) (*ReadingListItem, error) {
	var item ReadingListItem
	if err := c.patch(ctx, "/lists/"+listID+"/items/"+itemID, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveListItem removes an entry from a list
func (c *Client) RemoveListItem(ctx context.Context, listID, itemID string) error {
	return c.delete(ctx, "/lists/"+listID+"/items/"+itemID)
}

// AddListMember adds a user to a list; only the owner may do this
func (c *Client) AddListMember(ctx context.Context, listID string, req ListMemberInput) (*ReadingListMember, error) {
	var member ReadingListMember
	if err := c.post(ctx, "/lists/"+listID+"/members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateListMember changes a list member's role
func (c *Client) UpdateListMember(ctx context.Context, listID, userID string, req ListMemberUpdateRequest) (*ReadingListMember, error) {
	var member ReadingListMember
	if err := c.patch(ctx, "/lists/"+listID+"/members/"+userID, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveListMember removes a user from a list. Members may remove
// themselves; everyone else needs to be the owner.
func (c *Client) RemoveListMember(ctx context.Context, listID, userID string) error {
	return c.delete(ctx, "/lists/"+listID+"/members/"+userID)
}

// PutListProgress upserts the caller's status on a list item. Marking an
// item completed stamps the completion time server-side.
func (c *Client) PutListProgress(ctx context.Context, listID, itemID string, req ListProgressInput) (*ReadingListProgress, error) {
	var progress ReadingListProgress
	if err := c.put(ctx, "/lists/"+listID+"/items/"+itemID+"/progress", req, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
