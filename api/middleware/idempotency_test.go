package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"v-1"}}`))
	}))

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", "/api/v1/vendors", strings.NewReader(`{"name":"acme"}`))
		r.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	first := send()
	second := send()

	if calls != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("unexpected statuses %d / %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyGuardsRoutesOnNestedRouter(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0

	// Mirrors the production registration: the middleware sits on a subrouter,
	// so at invocation time only the parent wildcard has matched.
	root := chi.NewRouter()
	root.Route("/api", func(api chi.Router) {
		api.Use(Idempotency(store, nil))
		api.Route("/v1/requests", func(req chi.Router) {
			req.Post("/{requestId}/tables/{kind}/save", func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"data":{"saved":2}}`))
			})
		})
	})

	send := func(key string) *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", "/api/v1/requests/req-1/tables/shipping/save", strings.NewReader(`{"edits":[{"item_id":"i-1"}]}`))
		if key != "" {
			r.Header.Set("Idempotency-Key", key)
		}
		w := httptest.NewRecorder()
		root.ServeHTTP(w, r)
		return w
	}

	if w := send(""); w.Code != http.StatusBadRequest {
		t.Fatalf("missing key should fail validation, got %d", w.Code)
	}

	first := send("save-1")
	second := send("save-1")
	if calls != 1 {
		t.Fatalf("save handler should run once, ran %d times", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	r := httptest.NewRequest("POST", "/api/v1/vendors", strings.NewReader(`{"name":"acme"}`))
	r.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	r = httptest.NewRequest("POST", "/api/v1/vendors", strings.NewReader(`{"name":"other"}`))
	r.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestIdempotencyRequiresHeaderOnGuardedRoutes(t *testing.T) {
	handler := Idempotency(newFakeIdempotencyStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	r := httptest.NewRequest("POST", "/api/v1/vendors", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestIdempotencySkipsUnguardedRoutes(t *testing.T) {
	handler := Idempotency(newFakeIdempotencyStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/api/v1/requests", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected passthrough, got %d", w.Code)
	}
}
