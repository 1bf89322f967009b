package adminpanel

import (
	"context"
	"fmt"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

// Service defines the admin panel behavior: paginated list plus
// create/update/delete for each administered resource. Every operation
// proxies the procurement backend.
type Service interface {
	ListCompanies(ctx context.Context, token string, params pagination.Params) ([]upstream.Company, error)
	CreateCompany(ctx context.Context, token string, input CompanyInput) (*upstream.Company, error)
	UpdateCompany(ctx context.Context, token, companyID string, input CompanyInput) (*upstream.Company, error)
	DeleteCompany(ctx context.Context, token, companyID string) error

	ListUsers(ctx context.Context, token string, params pagination.Params) ([]upstream.User, error)
	CreateUser(ctx context.Context, token string, input CreateUserInput) (*upstream.User, error)
	UpdateUser(ctx context.Context, token, userID string, input UpdateUserInput) (*upstream.User, error)
	DeleteUser(ctx context.Context, token, userID string) error

	ListVessels(ctx context.Context, token string, params pagination.Params) ([]upstream.Vessel, error)
	CreateVessel(ctx context.Context, token string, input VesselInput) (*upstream.Vessel, error)
	UpdateVessel(ctx context.Context, token, vesselID string, input VesselInput) (*upstream.Vessel, error)
	DeleteVessel(ctx context.Context, token, vesselID string) error

	ListInventory(ctx context.Context, token, vesselID string, params pagination.Params) ([]upstream.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, token string, input InventoryInput) (*upstream.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, token, itemID string, input InventoryInput) (*upstream.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, token, itemID string) error
}

type backendClient interface {
	ListCompanies(ctx context.Context, token string, params pagination.Params) ([]upstream.Company, error)
	CreateCompany(ctx context.Context, token string, payload map[string]any) (*upstream.Company, error)
	UpdateCompany(ctx context.Context, token, companyID string, changes map[string]any) (*upstream.Company, error)
	DeleteCompany(ctx context.Context, token, companyID string) error

	ListUsers(ctx context.Context, token string, params pagination.Params) ([]upstream.User, error)
	CreateUser(ctx context.Context, token string, payload map[string]any) (*upstream.User, error)
	UpdateUser(ctx context.Context, token, userID string, changes map[string]any) (*upstream.User, error)
	DeleteUser(ctx context.Context, token, userID string) error

	ListVessels(ctx context.Context, token string, params pagination.Params) ([]upstream.Vessel, error)
	CreateVessel(ctx context.Context, token string, payload map[string]any) (*upstream.Vessel, error)
	UpdateVessel(ctx context.Context, token, vesselID string, changes map[string]any) (*upstream.Vessel, error)
	DeleteVessel(ctx context.Context, token, vesselID string) error

	ListInventory(ctx context.Context, token, vesselID string, params pagination.Params) ([]upstream.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, token string, payload map[string]any) (*upstream.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, token, itemID string, changes map[string]any) (*upstream.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, token, itemID string) error
}

type service struct {
	backend backendClient
}

// NewService constructs the admin panel service.
func NewService(backend backendClient) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) ListCompanies(ctx context.Context, token string, params pagination.Params) ([]upstream.Company, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListCompanies(ctx, token, params)
}

func (s *service) CreateCompany(ctx context.Context, token string, input CompanyInput) (*upstream.Company, error) {
	return s.backend.CreateCompany(ctx, token, companyPayload(input))
}

func (s *service) UpdateCompany(ctx context.Context, token, companyID string, input CompanyInput) (*upstream.Company, error) {
	if companyID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	return s.backend.UpdateCompany(ctx, token, companyID, companyPayload(input))
}

func (s *service) DeleteCompany(ctx context.Context, token, companyID string) error {
	if companyID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	return s.backend.DeleteCompany(ctx, token, companyID)
}

func (s *service) ListUsers(ctx context.Context, token string, params pagination.Params) ([]upstream.User, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListUsers(ctx, token, params)
}

func (s *service) CreateUser(ctx context.Context, token string, input CreateUserInput) (*upstream.User, error) {
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role is invalid")
	}
	payload := map[string]any{
		"username": input.Username,
		"role":     role.String(),
		"password": input.Password,
	}
	setIfPresent(payload, "email", input.Email)
	setIfPresent(payload, "companyId", input.CompanyID)
	setIfPresent(payload, "vesselId", input.VesselID)
	return s.backend.CreateUser(ctx, token, payload)
}

func (s *service) UpdateUser(ctx context.Context, token, userID string, input UpdateUserInput) (*upstream.User, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	payload := map[string]any{}
	if input.Role != "" {
		role, err := enums.ParseUserRole(input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "role is invalid")
		}
		payload["role"] = role.String()
	}
	setIfPresent(payload, "email", input.Email)
	setIfPresent(payload, "companyId", input.CompanyID)
	setIfPresent(payload, "vesselId", input.VesselID)
	setIfPresent(payload, "password", input.Password)
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}
	return s.backend.UpdateUser(ctx, token, userID, payload)
}

func (s *service) DeleteUser(ctx context.Context, token, userID string) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.backend.DeleteUser(ctx, token, userID)
}

func (s *service) ListVessels(ctx context.Context, token string, params pagination.Params) ([]upstream.Vessel, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListVessels(ctx, token, params)
}

func (s *service) CreateVessel(ctx context.Context, token string, input VesselInput) (*upstream.Vessel, error) {
	return s.backend.CreateVessel(ctx, token, vesselPayload(input))
}

func (s *service) UpdateVessel(ctx context.Context, token, vesselID string, input VesselInput) (*upstream.Vessel, error) {
	if vesselID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vessel id is required")
	}
	return s.backend.UpdateVessel(ctx, token, vesselID, vesselPayload(input))
}

func (s *service) DeleteVessel(ctx context.Context, token, vesselID string) error {
	if vesselID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vessel id is required")
	}
	return s.backend.DeleteVessel(ctx, token, vesselID)
}

func (s *service) ListInventory(ctx context.Context, token, vesselID string, params pagination.Params) ([]upstream.InventoryItem, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListInventory(ctx, token, vesselID, params)
}

func (s *service) CreateInventoryItem(ctx context.Context, token string, input InventoryInput) (*upstream.InventoryItem, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity may not be negative")
	}
	return s.backend.CreateInventoryItem(ctx, token, inventoryPayload(input))
}

func (s *service) UpdateInventoryItem(ctx context.Context, token, itemID string, input InventoryInput) (*upstream.InventoryItem, error) {
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory item id is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity may not be negative")
	}
	return s.backend.UpdateInventoryItem(ctx, token, itemID, inventoryPayload(input))
}

func (s *service) DeleteInventoryItem(ctx context.Context, token, itemID string) error {
	if itemID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "inventory item id is required")
	}
	return s.backend.DeleteInventoryItem(ctx, token, itemID)
}

func companyPayload(input CompanyInput) map[string]any {
	payload := map[string]any{"name": input.Name}
	setIfPresent(payload, "address", input.Address)
	setIfPresent(payload, "email", input.Email)
	setIfPresent(payload, "phone", input.Phone)
	return payload
}

func vesselPayload(input VesselInput) map[string]any {
	payload := map[string]any{"name": input.Name}
	setIfPresent(payload, "imoNumber", input.IMONumber)
	setIfPresent(payload, "companyId", input.CompanyID)
	return payload
}

func inventoryPayload(input InventoryInput) map[string]any {
	payload := map[string]any{
		"description": input.Description,
		"quantity":    input.Quantity,
	}
	setIfPresent(payload, "vesselId", input.VesselID)
	setIfPresent(payload, "maker", input.Maker)
	setIfPresent(payload, "partNo", input.PartNo)
	setIfPresent(payload, "location", input.Location)
	return payload
}

func setIfPresent(payload map[string]any, key, value string) {
	if value != "" {
		payload[key] = value
	}
}
