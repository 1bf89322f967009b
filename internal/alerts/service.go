package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

// Alert is one transient notice in a session's feed.
type Alert struct {
	ID        string              `json:"id"`
	Severity  enums.AlertSeverity `json:"severity"`
	Message   string              `json:"message"`
	CreatedAt time.Time           `json:"created_at"`
}

// ConfirmTicket names a destructive action awaiting explicit confirmation.
// The client replays the mutation with the token to complete it.
type ConfirmTicket struct {
	Token     string    `json:"token"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service is the explicit notification object that replaces ambient overlay
// state: per-session alert feeds plus two-phase confirmation tickets for
// destructive actions.
type Service interface {
	Push(ctx context.Context, sessionID string, severity enums.AlertSeverity, message string) error
	Feed(ctx context.Context, sessionID string) ([]Alert, error)
	IssueConfirm(ctx context.Context, sessionID, action, subject string) (*ConfirmTicket, error)
	Confirm(ctx context.Context, sessionID, token, action string) error
}

type feedStore interface {
	PushCapped(ctx context.Context, key, value string, maxLen int64, ttl time.Duration) error
	ListAll(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AlertFeedKey(sessionID string) string
	ConfirmTokenKey(token string) string
}

type service struct {
	store      feedStore
	ttl        time.Duration
	maxKept    int64
	confirmTTL time.Duration
}

// NewService constructs the alerts service.
func NewService(store feedStore, alertsCfg config.AlertsConfig, confirmCfg config.ConfirmConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("alert store is required")
	}
	ttl := alertsCfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	maxKept := int64(alertsCfg.MaxKept)
	if maxKept <= 0 {
		maxKept = 50
	}
	confirmTTL := confirmCfg.TokenTTL
	if confirmTTL <= 0 {
		confirmTTL = 2 * time.Minute
	}
	return &service{store: store, ttl: ttl, maxKept: maxKept, confirmTTL: confirmTTL}, nil
}

// Push appends one alert to the session's capped feed.
func (s *service) Push(ctx context.Context, sessionID string, severity enums.AlertSeverity, message string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !severity.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert severity is invalid")
	}
	if strings.TrimSpace(message) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert message is required")
	}

	alert := Alert{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode alert")
	}
	if err := s.store.PushCapped(ctx, s.store.AlertFeedKey(sessionID), string(payload), s.maxKept, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "push alert")
	}
	return nil
}

// Feed returns the session's alerts, newest first. Entries that fail to
// decode are skipped rather than breaking the feed.
func (s *service) Feed(ctx context.Context, sessionID string) ([]Alert, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	raw, err := s.store.ListAll(ctx, s.store.AlertFeedKey(sessionID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read alert feed")
	}

	alerts := make([]Alert, 0, len(raw))
	for _, entry := range raw {
		var alert Alert
		if json.Unmarshal([]byte(entry), &alert) != nil {
			continue
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// IssueConfirm stores a short-lived token naming the destructive action the
// caller is about to perform.
func (s *service) IssueConfirm(ctx context.Context, sessionID, action, subject string) (*ConfirmTicket, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if strings.TrimSpace(action) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "action is required")
	}

	ticket := ConfirmTicket{
		Token:     uuid.NewString(),
		Action:    action,
		Subject:   subject,
		ExpiresAt: time.Now().UTC().Add(s.confirmTTL),
	}
	record := confirmRecord{SessionID: sessionID, Action: action, Subject: subject}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode confirm record")
	}
	if err := s.store.Set(ctx, s.store.ConfirmTokenKey(ticket.Token), string(payload), s.confirmTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store confirm token")
	}
	return &ticket, nil
}

// Confirm consumes a confirmation token. The token must exist, belong to the
// caller's session, and name the action being replayed; it is single use.
func (s *service) Confirm(ctx context.Context, sessionID, token, action string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "confirmation token is required")
	}

	key := s.store.ConfirmTokenKey(token)
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "confirmation expired or unknown")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read confirm token")
	}

	var record confirmRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode confirm record")
	}
	if record.SessionID != sessionID || record.Action != action {
		return pkgerrors.New(pkgerrors.CodeForbidden, "confirmation does not match this action")
	}

	if err := s.store.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume confirm token")
	}
	return nil
}

type confirmRecord struct {
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
	Subject   string `json:"subject,omitempty"`
}
