package vendors

import (
	"context"
	"fmt"
	"strings"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// Service defines the behavior needed by the vendors controller and by other
// services that resolve vendor references.
type Service interface {
	List(ctx context.Context, token string, params pagination.Params) ([]upstream.Vendor, error)
	Lookup(ctx context.Context, token string) (map[string]string, error)
	Resolve(ctx context.Context, token string, ref types.VendorRef) (types.VendorRef, error)
	Create(ctx context.Context, token, name string) (*upstream.Vendor, error)
	Update(ctx context.Context, token, vendorID, name string) (*upstream.Vendor, error)
	Delete(ctx context.Context, token, vendorID string) error
}

type backendClient interface {
	ListVendors(ctx context.Context, token string, params pagination.Params) ([]upstream.Vendor, error)
	CreateVendor(ctx context.Context, token, name string) (*upstream.Vendor, error)
	UpdateVendor(ctx context.Context, token, vendorID string, changes map[string]any) (*upstream.Vendor, error)
	DeleteVendor(ctx context.Context, token, vendorID string) error
}

type service struct {
	backend backendClient
}

// NewService constructs the vendors service.
func NewService(backend backendClient) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) List(ctx context.Context, token string, params pagination.Params) ([]upstream.Vendor, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListVendors(ctx, token, params)
}

// Lookup builds the id-to-name map used to resolve vendor references.
func (s *service) Lookup(ctx context.Context, token string) (map[string]string, error) {
	vendors, err := s.backend.ListVendors(ctx, token, pagination.Params{Limit: pagination.MaxLimit})
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(vendors))
	for _, vendor := range vendors {
		nameByID[vendor.ID] = vendor.Name
	}
	return nameByID, nil
}

// Resolve normalizes a vendor reference against the directory.
func (s *service) Resolve(ctx context.Context, token string, ref types.VendorRef) (types.VendorRef, error) {
	if ref.IsZero() {
		return ref, nil
	}
	nameByID, err := s.Lookup(ctx, token)
	if err != nil {
		return types.VendorRef{}, err
	}
	return ref.Resolve(nameByID), nil
}

func (s *service) Create(ctx context.Context, token, name string) (*upstream.Vendor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}
	return s.backend.CreateVendor(ctx, token, name)
}

func (s *service) Update(ctx context.Context, token, vendorID, name string) (*upstream.Vendor, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}
	return s.backend.UpdateVendor(ctx, token, vendorID, map[string]any{"name": trimmed})
}

func (s *service) Delete(ctx context.Context, token, vendorID string) error {
	if vendorID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	return s.backend.DeleteVendor(ctx, token, vendorID)
}
