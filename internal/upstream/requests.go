package upstream

import (
	"context"
	"fmt"
	"net/url"

	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

// ListRequests pages through the caller's visible requests.
func (c *Client) ListRequests(ctx context.Context, token string, params pagination.Params) ([]Request, error) {
	var requests []Request
	path := "/requests" + listQuery(params.Limit, params.Cursor, params.Search)
	if err := c.getJSON(ctx, token, path, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequest fetches one request with its full item list.
func (c *Client) GetRequest(ctx context.Context, token, requestID string) (*Request, error) {
	if requestID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}
	var request Request
	if err := c.getJSON(ctx, token, "/requests/"+url.PathEscape(requestID), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateRequest patches request-level fields such as the fee schedules.
func (c *Client) UpdateRequest(ctx context.Context, token, requestID string, changes map[string]any) (*Request, error) {
	if requestID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var request Request
	if err := c.patchJSON(ctx, token, "/requests/"+url.PathEscape(requestID), changes, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListItems fetches the item list for one request.
func (c *Client) ListItems(ctx context.Context, token, requestID string) ([]Item, error) {
	if requestID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}
	var items []Item
	if err := c.getJSON(ctx, token, fmt.Sprintf("/requests/%s/items", url.PathEscape(requestID)), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItemResult carries whatever canonical state the backend returned for
// an item patch. Items is populated only when the backend chose to return the
// request's full refreshed item list.
type UpdateItemResult struct {
	Item  *Item  `json:"item,omitempty"`
	Items []Item `json:"items,omitempty"`
}

// UpdateItem sends one item's change-set and returns the backend's canonical
// response.
func (c *Client) UpdateItem(ctx context.Context, token, requestID, itemID string, changes map[string]any) (*UpdateItemResult, error) {
	if requestID == "" || itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id and item id are required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var result UpdateItemResult
	path := fmt.Sprintf("/requests/%s/items/%s", url.PathEscape(requestID), url.PathEscape(itemID))
	if err := c.patchJSON(ctx, token, path, changes, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AttachItems merges items from another request into the target request.
func (c *Client) AttachItems(ctx context.Context, token, requestID, sourceRequestID string, itemIDs []string) ([]Item, error) {
	if requestID == "" || sourceRequestID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id and source request id are required")
	}
	if len(itemIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item id is required")
	}
	body := map[string]any{
		"sourceRequestId": sourceRequestID,
		"itemIds":         itemIDs,
	}
	var items []Item
	if err := c.postJSON(ctx, token, fmt.Sprintf("/requests/%s/attach", url.PathEscape(requestID)), body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DetachItem returns a previously merged item to its originating request.
func (c *Client) DetachItem(ctx context.Context, token, requestID, itemID string) ([]Item, error) {
	if requestID == "" || itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id and item id are required")
	}
	body := map[string]any{"itemId": itemID}
	var items []Item
	if err := c.postJSON(ctx, token, fmt.Sprintf("/requests/%s/detach", url.PathEscape(requestID)), body, &items); err != nil {
		return nil, err
	}
	return items, nil
}
