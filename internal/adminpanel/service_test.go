package adminpanel

import (
	"context"
	"testing"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

type fakeBackend struct {
	userPayloads  []map[string]any
	deletedUsers  []string
	listReqParams pagination.Params
}

func (f *fakeBackend) ListCompanies(ctx context.Context, token string, params pagination.Params) ([]upstream.Company, error) {
	f.listReqParams = params
	return nil, nil
}
func (f *fakeBackend) CreateCompany(ctx context.Context, token string, payload map[string]any) (*upstream.Company, error) {
	return &upstream.Company{ID: "c-1", Name: payload["name"].(string)}, nil
}
func (f *fakeBackend) UpdateCompany(ctx context.Context, token, companyID string, changes map[string]any) (*upstream.Company, error) {
	return &upstream.Company{ID: companyID}, nil
}
func (f *fakeBackend) DeleteCompany(ctx context.Context, token, companyID string) error { return nil }

func (f *fakeBackend) ListUsers(ctx context.Context, token string, params pagination.Params) ([]upstream.User, error) {
	return nil, nil
}
func (f *fakeBackend) CreateUser(ctx context.Context, token string, payload map[string]any) (*upstream.User, error) {
	f.userPayloads = append(f.userPayloads, payload)
	return &upstream.User{ID: "u-1"}, nil
}
func (f *fakeBackend) UpdateUser(ctx context.Context, token, userID string, changes map[string]any) (*upstream.User, error) {
	f.userPayloads = append(f.userPayloads, changes)
	return &upstream.User{ID: userID}, nil
}
func (f *fakeBackend) DeleteUser(ctx context.Context, token, userID string) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func (f *fakeBackend) ListVessels(ctx context.Context, token string, params pagination.Params) ([]upstream.Vessel, error) {
	return nil, nil
}
func (f *fakeBackend) CreateVessel(ctx context.Context, token string, payload map[string]any) (*upstream.Vessel, error) {
	return &upstream.Vessel{ID: "ves-1"}, nil
}
func (f *fakeBackend) UpdateVessel(ctx context.Context, token, vesselID string, changes map[string]any) (*upstream.Vessel, error) {
	return &upstream.Vessel{ID: vesselID}, nil
}
func (f *fakeBackend) DeleteVessel(ctx context.Context, token, vesselID string) error { return nil }

func (f *fakeBackend) ListInventory(ctx context.Context, token, vesselID string, params pagination.Params) ([]upstream.InventoryItem, error) {
	return nil, nil
}
func (f *fakeBackend) CreateInventoryItem(ctx context.Context, token string, payload map[string]any) (*upstream.InventoryItem, error) {
	return &upstream.InventoryItem{ID: "inv-1"}, nil
}
func (f *fakeBackend) UpdateInventoryItem(ctx context.Context, token, itemID string, changes map[string]any) (*upstream.InventoryItem, error) {
	return &upstream.InventoryItem{ID: itemID}, nil
}
func (f *fakeBackend) DeleteInventoryItem(ctx context.Context, token, itemID string) error {
	return nil
}

func newTestService(t *testing.T) (Service, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	svc, err := NewService(backend)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, backend
}

func TestCreateUserValidatesRoleBeforeNetwork(t *testing.T) {
	svc, backend := newTestService(t)

	_, err := svc.CreateUser(context.Background(), "token", CreateUserInput{
		Username:        "deckhand",
		Role:            "superuser",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(backend.userPayloads) != 0 {
		t.Fatal("invalid input must not reach the backend")
	}
}

func TestCreateUserForwardsNormalizedPayload(t *testing.T) {
	svc, backend := newTestService(t)

	_, err := svc.CreateUser(context.Background(), "token", CreateUserInput{
		Username:        "deckhand",
		Role:            "crew",
		CompanyID:       "c-1",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	payload := backend.userPayloads[0]
	if payload["role"] != "crew" || payload["username"] != "deckhand" || payload["companyId"] != "c-1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if _, exists := payload["vesselId"]; exists {
		t.Fatal("empty fields must be omitted")
	}
}

func TestUpdateUserEmptyInputIsNoChanges(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateUser(context.Background(), "token", "u-1", UpdateUserInput{})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNoChanges {
		t.Fatalf("expected no-changes error, got %v", err)
	}
}

func TestInventoryQuantityMinimum(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateInventoryItem(context.Background(), "token", InventoryInput{
		Description: "spare impeller",
		Quantity:    -1,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListCompaniesNormalizesLimit(t *testing.T) {
	svc, backend := newTestService(t)

	if _, err := svc.ListCompanies(context.Background(), "token", pagination.Params{Limit: 0}); err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if backend.listReqParams.Limit != pagination.DefaultLimit {
		t.Fatalf("expected default limit, got %d", backend.listReqParams.Limit)
	}
}
