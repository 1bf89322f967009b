package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blueanchorhq/procurement-gateway/api/responses"
	pkgauth "github.com/blueanchorhq/procurement-gateway/pkg/auth"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
)

// SessionReader resolves the Redis session behind an access token's jti.
type SessionReader interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
	UpstreamToken(ctx context.Context, accessID string) (string, error)
}

// Auth validates a bearer token, checks the Redis session, and seeds the
// request context with the claims plus the upstream backend token.
func Auth(cfg config.JWTConfig, sessions SessionReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			var upstreamToken string
			if sessions != nil {
				ok, err := sessions.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
				upstreamToken, err = sessions.UpstreamToken(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			ctx = context.WithValue(ctx, ctxSessionID, claims.ID)
			if claims.CompanyID != "" {
				ctx = context.WithValue(ctx, ctxCompanyID, claims.CompanyID)
			}
			if upstreamToken != "" {
				ctx = context.WithValue(ctx, ctxUpstreamToken, upstreamToken)
			}

			if logg != nil {
				fields := map[string]any{
					"user_id":    claims.UserID,
					"actor_role": string(claims.Role),
				}
				if claims.CompanyID != "" {
					fields["company_id"] = claims.CompanyID
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the raw token from the Authorization header, with or
// without the Bearer prefix.
func BearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
