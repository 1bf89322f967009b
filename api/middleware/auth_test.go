package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/blueanchorhq/procurement-gateway/pkg/auth"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret-test-secret-test-secret",
	Issuer:            "procurement-gateway",
	ExpirationMinutes: 15,
}

type fakeSessions struct {
	known  map[string]string
	hasErr error
}

func (f *fakeSessions) HasSession(_ context.Context, accessID string) (bool, error) {
	if f.hasErr != nil {
		return false, f.hasErr
	}
	_, ok := f.known[accessID]
	return ok, nil
}

func (f *fakeSessions) UpstreamToken(_ context.Context, accessID string) (string, error) {
	return f.known[accessID], nil
}

func mintTestToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:    "user-1",
		CompanyID: "company-1",
		Role:      enums.UserRoleAccountant,
		JTI:       jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	sessions := &fakeSessions{known: map[string]string{"jti-1": "backend-token"}}

	var seen struct {
		userID, role, companyID, sessionID, upstream string
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.userID = UserIDFromContext(r.Context())
		seen.role = RoleFromContext(r.Context())
		seen.companyID = CompanyIDFromContext(r.Context())
		seen.sessionID = SessionIDFromContext(r.Context())
		seen.upstream = UpstreamTokenFromContext(r.Context())
	})

	r := httptest.NewRequest("GET", "/api/v1/requests", nil)
	r.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-1"))
	w := httptest.NewRecorder()

	Auth(testJWTConfig, sessions, nil)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if seen.userID != "user-1" || seen.role != "accountant" || seen.companyID != "company-1" {
		t.Fatalf("unexpected identity %+v", seen)
	}
	if seen.sessionID != "jti-1" {
		t.Fatalf("expected session id jti-1, got %q", seen.sessionID)
	}
	if seen.upstream != "backend-token" {
		t.Fatalf("expected upstream token, got %q", seen.upstream)
	}
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	called := false
	Auth(testJWTConfig, &fakeSessions{}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if called {
		t.Fatalf("next handler should not run")
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	sessions := &fakeSessions{known: map[string]string{}}

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintTestToken(t, "jti-gone"))
	w := httptest.NewRecorder()

	Auth(testJWTConfig, sessions, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next handler should not run")
	})).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	Auth(testJWTConfig, &fakeSessions{}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("next handler should not run")
	})).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAnyRole(t *testing.T) {
	handler := RequireAnyRole([]enums.UserRole{enums.UserRoleAdmin, enums.UserRoleAccountant}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), ctxRole, "accountant"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("accountant should pass, got %d", w.Code)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), ctxRole, "crew"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("crew should be rejected, got %d", w.Code)
	}
}
