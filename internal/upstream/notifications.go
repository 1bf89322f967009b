package upstream

import (
	"context"
	"net/url"

	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

// ListNotifications pages through the caller's notification feed.
func (c *Client) ListNotifications(ctx context.Context, token string, params pagination.Params) ([]Notification, error) {
	var notifications []Notification
	path := "/notifications" + listQuery(params.Limit, params.Cursor, "")
	if err := c.getJSON(ctx, token, path, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, token, notificationID string) (*Notification, error) {
	if notificationID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	var notification Notification
	path := "/notifications/" + url.PathEscape(notificationID)
	if err := c.patchJSON(ctx, token, path, map[string]any{"read": true}, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, token, notificationID string) error {
	if notificationID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	return c.deleteJSON(ctx, token, "/notifications/"+url.PathEscape(notificationID))
}

// ClearNotifications empties the caller's feed.
func (c *Client) ClearNotifications(ctx context.Context, token string) error {
	return c.deleteJSON(ctx, token, "/notifications")
}
