package notifications

import (
	"context"
	"fmt"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
)

// Service proxies the backend notification feed.
type Service interface {
	List(ctx context.Context, token string, params pagination.Params) ([]upstream.Notification, error)
	MarkRead(ctx context.Context, token, notificationID string) (*upstream.Notification, error)
	Delete(ctx context.Context, token, notificationID string) error
	ClearAll(ctx context.Context, token string) error
}

type backendClient interface {
	ListNotifications(ctx context.Context, token string, params pagination.Params) ([]upstream.Notification, error)
	MarkNotificationRead(ctx context.Context, token, notificationID string) (*upstream.Notification, error)
	DeleteNotification(ctx context.Context, token, notificationID string) error
	ClearNotifications(ctx context.Context, token string) error
}

type service struct {
	backend backendClient
}

// NewService constructs the notifications service.
func NewService(backend backendClient) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) List(ctx context.Context, token string, params pagination.Params) ([]upstream.Notification, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListNotifications(ctx, token, params)
}

func (s *service) MarkRead(ctx context.Context, token, notificationID string) (*upstream.Notification, error) {
	if notificationID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	return s.backend.MarkNotificationRead(ctx, token, notificationID)
}

func (s *service) Delete(ctx context.Context, token, notificationID string) error {
	if notificationID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id is required")
	}
	return s.backend.DeleteNotification(ctx, token, notificationID)
}

func (s *service) ClearAll(ctx context.Context, token string) error {
	return s.backend.ClearNotifications(ctx, token)
}
