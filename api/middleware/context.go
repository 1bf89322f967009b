package middleware

import "context"

type contextKey string

const (
	ctxUserID        contextKey = "user_id"
	ctxRole          contextKey = "actor_role"
	ctxCompanyID     contextKey = "company_id"
	ctxSessionID     contextKey = "session_id"
	ctxUpstreamToken contextKey = "upstream_token"
)

func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

func RoleFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxRole)
}

func CompanyIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxCompanyID)
}

// SessionIDFromContext returns the jti of the presented access token, which
// doubles as the Redis session key.
func SessionIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxSessionID)
}

// UpstreamTokenFromContext returns the procurement backend bearer token bound
// to the caller's session.
func UpstreamTokenFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUpstreamToken)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return withString(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return withString(ctx, ctxRole, role)
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return withString(ctx, ctxSessionID, sessionID)
}

// WithUpstreamToken injects the backend bearer token for downstream proxy
// calls.
func WithUpstreamToken(ctx context.Context, token string) context.Context {
	return withString(ctx, ctxUpstreamToken, token)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}
