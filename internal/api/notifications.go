package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListNotifications fetches the caller's notification feed, newest first
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]Notification, error) {
	q := url.Values{}
	q.Set("unread_only", strconv.FormatBool(unreadOnly))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var notifications []Notification
	if err := c.get(ctx, "/notifications", q, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

// UnreadCount fetches the number of unread notifications
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp unreadCountResponse
	if err := c.get(ctx, "/notifications/unread-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkNotificationRead flips a notification's read flag
func (c *Client) MarkNotificationRead(ctx context.Context, id string, read bool) (*Notification, error) {
	body := map[string]bool{"read": read}
	var notification Notification
	if err := c.patch(ctx, "/notifications/"+id, body, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAllNotificationsRead marks the caller's entire feed read
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, "/notifications/mark-all-read", nil, nil)
}

// DeleteNotification removes a notification
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.delete(ctx, "/notifications/"+id)
}
