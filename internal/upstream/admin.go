package upstream

import (
	"context"
	"net/url"

	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

// Companies.

func (c *Client) ListCompanies(ctx context.Context, token string, params pagination.Params) ([]Company, error) {
	var companies []Company
	path := "/companies" + listQuery(params.Limit, params.Cursor, params.Search)
	if err := c.getJSON(ctx, token, path, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) CreateCompany(ctx context.Context, token string, payload map[string]any) (*Company, error) {
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company payload is required")
	}
	var company Company
	if err := c.postJSON(ctx, token, "/companies", payload, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, token, companyID string, changes map[string]any) (*Company, error) {
	if companyID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var company Company
	if err := c.patchJSON(ctx, token, "/companies/"+url.PathEscape(companyID), changes, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) DeleteCompany(ctx context.Context, token, companyID string) error {
	if companyID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	return c.deleteJSON(ctx, token, "/companies/"+url.PathEscape(companyID))
}

// Admin users.

func (c *Client) ListUsers(ctx context.Context, token string, params pagination.Params) ([]User, error) {
	var users []User
	path := "/admin/users" + listQuery(params.Limit, params.Cursor, params.Search)
	if err := c.getJSON(ctx, token, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, payload map[string]any) (*User, error) {
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user payload is required")
	}
	var user User
	if err := c.postJSON(ctx, token, "/admin/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, userID string, changes map[string]any) (*User, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var user User
	if err := c.patchJSON(ctx, token, "/admin/users/"+url.PathEscape(userID), changes, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return c.deleteJSON(ctx, token, "/admin/users/"+url.PathEscape(userID))
}

// Vessels.

func (c *Client) ListVessels(ctx context.Context, token string, params pagination.Params) ([]Vessel, error) {
	var vessels []Vessel
	path := "/admin/vessels" + listQuery(params.Limit, params.Cursor, params.Search)
	if err := c.getJSON(ctx, token, path, &vessels); err != nil {
		return nil, err
	}
	return vessels, nil
}

func (c *Client) CreateVessel(ctx context.Context, token string, payload map[string]any) (*Vessel, error) {
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vessel payload is required")
	}
	var vessel Vessel
	if err := c.postJSON(ctx, token, "/admin/vessels", payload, &vessel); err != nil {
		return nil, err
	}
	return &vessel, nil
}

func (c *Client) UpdateVessel(ctx context.Context, token, vesselID string, changes map[string]any) (*Vessel, error) {
	if vesselID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vessel id is required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var vessel Vessel
	if err := c.patchJSON(ctx, token, "/admin/vessels/"+url.PathEscape(vesselID), changes, &vessel); err != nil {
		return nil, err
	}
	return &vessel, nil
}

func (c *Client) DeleteVessel(ctx context.Context, token, vesselID string) error {
	if vesselID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vessel id is required")
	}
	return c.deleteJSON(ctx, token, "/admin/vessels/"+url.PathEscape(vesselID))
}

// Inventory.

func (c *Client) ListInventory(ctx context.Context, token, vesselID string, params pagination.Params) ([]InventoryItem, error) {
	path := "/inventory" + listQuery(params.Limit, params.Cursor, params.Search)
	if vesselID != "" {
		sep := "?"
		if path != "/inventory" {
			sep = "&"
		}
		path += sep + "vesselId=" + url.QueryEscape(vesselID)
	}
	var items []InventoryItem
	if err := c.getJSON(ctx, token, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateInventoryItem(ctx context.Context, token string, payload map[string]any) (*InventoryItem, error) {
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory payload is required")
	}
	var item InventoryItem
	if err := c.postJSON(ctx, token, "/inventory", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateInventoryItem(ctx context.Context, token, itemID string, changes map[string]any) (*InventoryItem, error) {
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory item id is required")
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	var item InventoryItem
	if err := c.patchJSON(ctx, token, "/inventory/"+url.PathEscape(itemID), changes, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteInventoryItem(ctx context.Context, token, itemID string) error {
	if itemID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "inventory item id is required")
	}
	return c.deleteJSON(ctx, token, "/inventory/"+url.PathEscape(itemID))
}
