package alerts

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

type mockStore struct {
	mu    sync.Mutex
	lists map[string][]string
	kv    map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{lists: make(map[string][]string), kv: make(map[string]string)}
}

func (m *mockStore) PushCapped(ctx context.Context, key, value string, maxLen int64, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append([]string{value}, m.lists[key]...)
	if int64(len(m.lists[key])) > maxLen {
		m.lists[key] = m.lists[key][:maxLen]
	}
	return nil
}

func (m *mockStore) ListAll(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lists[key]...), nil
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.kv[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.kv, key)
	}
	return nil
}

func (m *mockStore) AlertFeedKey(sessionID string) string {
	return "alerts:" + sessionID
}

func (m *mockStore) ConfirmTokenKey(token string) string {
	return "confirm:" + token
}

func newTestService(t *testing.T) (Service, *mockStore) {
	t.Helper()
	store := newMockStore()
	svc, err := NewService(store, config.AlertsConfig{TTL: time.Minute, MaxKept: 3}, config.ConfirmConfig{TokenTTL: time.Minute})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestPushAndFeedRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Push(ctx, "sess-1", enums.AlertSeverityError, "item update rejected"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := svc.Push(ctx, "sess-1", enums.AlertSeveritySuccess, "saved 3 items"); err != nil {
		t.Fatalf("push: %v", err)
	}

	alerts, err := svc.Feed(ctx, "sess-1")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	// Newest first.
	if alerts[0].Message != "saved 3 items" || alerts[0].Severity != enums.AlertSeveritySuccess {
		t.Fatalf("unexpected head alert %+v", alerts[0])
	}

	other, err := svc.Feed(ctx, "sess-2")
	if err != nil {
		t.Fatalf("feed other session: %v", err)
	}
	if len(other) != 0 {
		t.Fatal("feeds must be per session")
	}
}

func TestFeedIsCapped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := svc.Push(ctx, "sess-1", enums.AlertSeverityInfo, fmt.Sprintf("notice %d", i)); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	alerts, err := svc.Feed(ctx, "sess-1")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(alerts))
	}
	if alerts[0].Message != "notice 4" {
		t.Fatalf("cap must drop the oldest, head is %q", alerts[0].Message)
	}
}

func TestConfirmFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ticket, err := svc.IssueConfirm(ctx, "sess-1", "company.delete", "c-42")
	if err != nil {
		t.Fatalf("issue confirm: %v", err)
	}
	if ticket.Token == "" || ticket.Action != "company.delete" {
		t.Fatalf("unexpected ticket %+v", ticket)
	}

	// Wrong session, wrong action, then the real consume.
	if err := svc.Confirm(ctx, "sess-2", ticket.Token, "company.delete"); err == nil {
		t.Fatal("foreign session must not confirm")
	}
	if err := svc.Confirm(ctx, "sess-1", ticket.Token, "user.delete"); err == nil {
		t.Fatal("mismatched action must not confirm")
	}
	if err := svc.Confirm(ctx, "sess-1", ticket.Token, "company.delete"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Single use.
	err = svc.Confirm(ctx, "sess-1", ticket.Token, "company.delete")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected token consumed, got %v", err)
	}
}

func TestPushValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Push(ctx, "", enums.AlertSeverityInfo, "msg"); err == nil {
		t.Fatal("expected missing session to fail")
	}
	if err := svc.Push(ctx, "sess-1", enums.AlertSeverity("loud"), "msg"); err == nil {
		t.Fatal("expected invalid severity to fail")
	}
	if err := svc.Push(ctx, "sess-1", enums.AlertSeverityInfo, "  "); err == nil {
		t.Fatal("expected empty message to fail")
	}
}
