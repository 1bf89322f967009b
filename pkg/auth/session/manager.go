package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	redisclient "github.com/blueanchorhq/procurement-gateway/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

const refreshTokenBytes = 32

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AccessSessionKey(accessID string) string
}

// Record is what the gateway keeps per live session: the rotating refresh
// token and the upstream bearer token forwarded on every backend call. No
// credentials are ever persisted; "remember me" is this refresh token.
type Record struct {
	RefreshToken  string `json:"refresh_token"`
	UpstreamToken string `json:"upstream_token"`
}

// Manager handles session creation, lookup, rotation, and revocation.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
	UpstreamToken(ctx context.Context, accessID string) (string, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.RefreshTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("refresh token ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl <= accessTTL {
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Start creates the session record for the provided access ID and returns the
// refresh token.
func (m *Manager) Start(ctx context.Context, accessID, upstreamToken string) (string, error) {
	if strings.TrimSpace(accessID) == "" {
		return "", fmt.Errorf("access id is required")
	}
	if strings.TrimSpace(upstreamToken) == "" {
		return "", fmt.Errorf("upstream token is required")
	}
	token, err := generateRefreshToken()
	if err != nil {
		return "", err
	}
	if err := m.put(ctx, accessID, Record{RefreshToken: token, UpstreamToken: upstreamToken}); err != nil {
		return "", err
	}
	return token, nil
}

// Rotate validates the provided refresh token, invalidates the prior session,
// and issues a new access/refresh pair carrying the same upstream token.
func (m *Manager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if strings.TrimSpace(oldAccessID) == "" || strings.TrimSpace(provided) == "" {
		return "", "", ErrInvalidRefreshToken
	}

	record, err := m.get(ctx, oldAccessID)
	if err != nil {
		return "", "", wrapNotFound(err)
	}

	if subtle.ConstantTimeCompare([]byte(record.RefreshToken), []byte(provided)) != 1 {
		return "", "", ErrInvalidRefreshToken
	}

	newAccessID := NewAccessID()
	newToken, err := generateRefreshToken()
	if err != nil {
		return "", "", err
	}
	if err := m.put(ctx, newAccessID, Record{RefreshToken: newToken, UpstreamToken: record.UpstreamToken}); err != nil {
		return "", "", err
	}

	if err := m.store.Del(ctx, m.keyer.AccessSessionKey(oldAccessID)); err != nil {
		return "", "", err
	}

	return newAccessID, newToken, nil
}

// Revoke deletes the session record tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.AccessSessionKey(accessID))
}

// HasSession reports whether the provided access ID still has a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.get(ctx, accessID); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpstreamToken returns the backend bearer token stored for the session.
func (m *Manager) UpstreamToken(ctx context.Context, accessID string) (string, error) {
	if strings.TrimSpace(accessID) == "" {
		return "", fmt.Errorf("access id is required")
	}
	record, err := m.get(ctx, accessID)
	if err != nil {
		return "", wrapNotFound(err)
	}
	return record.UpstreamToken, nil
}

// NewAccessID produces a stable identifier used as the JWT jti/Redis key.
func NewAccessID() string {
	return uuid.NewString()
}

func (m *Manager) put(ctx context.Context, accessID string, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.AccessSessionKey(accessID), string(payload), m.ttl)
}

func (m *Manager) get(ctx context.Context, accessID string) (Record, error) {
	raw, err := m.store.Get(ctx, m.keyer.AccessSessionKey(accessID))
	if err != nil {
		return Record{}, err
	}
	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return Record{}, fmt.Errorf("decoding session record: %w", err)
	}
	return record, nil
}

func generateRefreshToken() (string, error) {
	bytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, redislib.Nil) || errors.Is(err, ErrInvalidRefreshToken) {
		return ErrInvalidRefreshToken
	}
	return err
}
