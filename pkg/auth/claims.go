package auth

import (
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT. User and
// company identifiers come from the upstream backend and stay opaque strings.
type AccessTokenPayload struct {
	UserID    string
	CompanyID string
	Role      enums.UserRole
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID    string         `json:"user_id"`
	CompanyID string         `json:"company_id,omitempty"`
	Role      enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
