package auth

import (
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserDTO is the authenticated account as exposed to clients.
type UserDTO struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email,omitempty"`
	Role      enums.UserRole `json:"role"`
	CompanyID string         `json:"company_id,omitempty"`
	VesselID  string         `json:"vessel_id,omitempty"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// RefreshRequest rotates a session using the long-lived refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
