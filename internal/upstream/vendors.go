package upstream

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

// ListVendors pages through the vendor directory.
func (c *Client) ListVendors(ctx context.Context, token string, params pagination.Params) ([]Vendor, error) {
	var vendors []Vendor
	path := "/vendors" + listQuery(params.Limit, params.Cursor, params.Search)
	if err := c.getJSON(ctx, token, path, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// CreateVendor registers an ad hoc vendor name server-side and returns the
// persisted record.
func (c *Client) CreateVendor(ctx context.Context, token, name string) (*Vendor, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}
	var vendor Vendor
	if err := c.postJSON(ctx, token, "/vendors", map[string]any{"name": trimmed}, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// UpdateVendor patches a vendor record.
func (c *Client) UpdateVendor(ctx context.Context, token, vendorID string, changes map[string]any) (*Vendor, error) {
	if vendorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var vendor Vendor
	if err := c.patchJSON(ctx, token, "/vendors/"+url.PathEscape(vendorID), changes, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// DeleteVendor removes a vendor record.
func (c *Client) DeleteVendor(ctx context.Context, token, vendorID string) error {
	if vendorID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	return c.deleteJSON(ctx, token, "/vendors/"+url.PathEscape(vendorID))
}
