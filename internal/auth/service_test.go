package auth

import (
	"context"
	"testing"
	"time"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	pkgauth "github.com/blueanchorhq/procurement-gateway/pkg/auth"
	"github.com/blueanchorhq/procurement-gateway/pkg/auth/session"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

type fakeBackend struct {
	result *upstream.LoginResult
	err    error
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (*upstream.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeSessions struct {
	started       map[string]string
	revoked       []string
	rotateErr     error
	nextAccessID  string
	nextRefresh   string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{started: make(map[string]string), nextAccessID: "rotated-id", nextRefresh: "rotated-refresh"}
}

func (f *fakeSessions) Start(ctx context.Context, accessID, upstreamToken string) (string, error) {
	f.started[accessID] = upstreamToken
	return "refresh-" + accessID, nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateErr != nil {
		return "", "", f.rotateErr
	}
	return f.nextAccessID, f.nextRefresh, nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "procurement-gateway",
		ExpirationMinutes: 15,
	}
}

func newTestService(t *testing.T, backend *fakeBackend, sessions *fakeSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Backend:        backend,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginMintsTokensAndStoresUpstreamToken(t *testing.T) {
	backend := &fakeBackend{result: &upstream.LoginResult{
		Token: "upstream-bearer",
		User: upstream.User{
			ID:        "u-1",
			Username:  "captain.jones",
			Role:      enums.UserRoleCaptain,
			CompanyID: "c-1",
		},
	}}
	sessions := newFakeSessions()
	svc := newTestService(t, backend, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "captain.jones", Password: "longenough1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != enums.UserRoleCaptain || claims.CompanyID != "c-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	stored, ok := sessions.started[claims.ID]
	if !ok {
		t.Fatalf("no session stored for jti %q", claims.ID)
	}
	if stored != "upstream-bearer" {
		t.Fatalf("upstream token not stored, got %q", stored)
	}
	if resp.RefreshToken != "refresh-"+claims.ID {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if resp.User.Username != "captain.jones" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
}

func TestLoginMapsUpstreamRejectionToInvalidCredentials(t *testing.T) {
	backend := &fakeBackend{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "bad password for account")}
	svc := newTestService(t, backend, newFakeSessions())

	_, err := svc.Login(context.Background(), LoginRequest{Username: "x", Password: "y"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if coded.Message() != invalidCredentialsMessage {
		t.Fatalf("upstream detail must not leak, got %q", coded.Message())
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	backend := &fakeBackend{result: &upstream.LoginResult{
		Token: "upstream-bearer",
		User:  upstream.User{ID: "u-1", Role: enums.UserRole("superuser")},
	}}
	svc := newTestService(t, backend, newFakeSessions())

	_, err := svc.Login(context.Background(), LoginRequest{Username: "x", Password: "y"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown role, got %v", err)
	}
}

func TestRefreshRotatesSessionAndKeepsClaims(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(t, &fakeBackend{}, sessions)

	accessToken, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:    "u-1",
		CompanyID: "c-1",
		Role:      enums.UserRoleAccountant,
		JTI:       "old-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), accessToken, RefreshRequest{RefreshToken: "old-refresh"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.RefreshToken != "rotated-refresh" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != "rotated-id" {
		t.Fatalf("expected new jti, got %q", claims.ID)
	}
	if claims.UserID != "u-1" || claims.Role != enums.UserRoleAccountant {
		t.Fatalf("identity claims lost: %+v", claims)
	}
}

func TestRefreshWithBadTokenIsUnauthorized(t *testing.T) {
	sessions := newFakeSessions()
	sessions.rotateErr = session.ErrInvalidRefreshToken
	svc := newTestService(t, &fakeBackend{}, sessions)

	accessToken, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: "u-1",
		Role:   enums.UserRoleCrew,
		JTI:    "old-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), accessToken, RefreshRequest{RefreshToken: "stolen"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(t, &fakeBackend{}, sessions)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("session not revoked: %v", sessions.revoked)
	}
}
