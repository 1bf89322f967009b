package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	pkgauth "github.com/blueanchorhq/procurement-gateway/pkg/auth"
	"github.com/blueanchorhq/procurement-gateway/pkg/auth/session"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, accessToken string, req RefreshRequest) (*RefreshResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type upstreamAuthenticator interface {
	Login(ctx context.Context, username, password string) (*upstream.LoginResult, error)
}

type sessionManager interface {
	Start(ctx context.Context, accessID, upstreamToken string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	backend upstreamAuthenticator
	session sessionManager
	jwtCfg  config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Backend        upstreamAuthenticator
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Backend == nil {
		return nil, fmt.Errorf("upstream authenticator is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		backend: params.Backend,
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
	}, nil
}

// Login forwards the credentials upstream, then mints the gateway's own token
// pair. The upstream bearer token lives only in the Redis session record.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	result, err := s.backend.Login(ctx, req.Username, req.Password)
	if err != nil {
		coded := pkgerrors.As(err)
		if coded != nil && coded.Code() == pkgerrors.CodeUnauthorized {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, err
	}

	if !result.User.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:    result.User.ID,
		CompanyID: result.User.CompanyID,
		Role:      result.User.Role,
		JTI:       accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken, err := s.session.Start(ctx, accessID, result.Token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserDTO{
			ID:        result.User.ID,
			Username:  result.User.Username,
			Email:     result.User.Email,
			Role:      result.User.Role,
			CompanyID: result.User.CompanyID,
			VesselID:  result.User.VesselID,
		},
	}, nil
}

// Refresh rotates the session named by the (possibly expired) access token
// and mints a fresh pair carrying the same identity claims.
func (s *service) Refresh(ctx context.Context, accessToken string, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	newAccessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
		JTI:       newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefresh,
	}, nil
}

// Logout revokes the caller's session. Revoking an already-dead session is
// not an error.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}
