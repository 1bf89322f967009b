package upstream

import (
	"context"
	"strings"

	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

// LoginResult is the backend's answer to a successful credential check: its
// own bearer token plus the authenticated account.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login verifies credentials against the procurement backend. The gateway
// never stores the password; it only forwards it for this one call.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}
	body := map[string]any{
		"username": strings.TrimSpace(username),
		"password": password,
	}
	var result LoginResult
	if err := c.postJSON(ctx, "", "/auth/login", body, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "procurement backend returned no session token")
	}
	return &result, nil
}
