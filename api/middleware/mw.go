package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vox-platform/vox-auth-services/internal/authn"
	"github.com/vox-platform/vox-auth-services/models"
)

type contextKey string
type tokenKey string

const ClaimsKey contextKey = "claims"
const TokenKey tokenKey = "token"

// SessionChecker verifies that the session behind a token still exists.
type SessionChecker interface {
	GetSession(sessionUUID uuid.UUID) (*models.Session, error)
}

// TokenMiddleware parses and verifies the bearer token, checks that its
// session has not been revoked, and adds the claims to the request context.
func TokenMiddleware(secret []byte, sessions SessionChecker) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context()).With().
					Str("handler", "TokenMiddleware").Logger()

				// Get the Authorization header
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					logger.Debug().Msg("authorization header missing")
					writeError(w, http.StatusUnauthorized, "authorization header missing")
					return
				}

				// Check the Authorization header format
				token := strings.TrimPrefix(authHeader, "Bearer ")
				if token == authHeader {
					logger.Debug().Msg("invalid token format")
					writeError(w, http.StatusUnauthorized, "invalid token format")
					return
				}

				// Parse and verify the token
				claims, err := authn.ParseClaims(token, secret)
				if err != nil {
					logger.Debug().Err(err).Msg("invalid bearer token")
					writeError(w, http.StatusUnauthorized, "invalid bearer token")
					return
				}

				// The jwt id is the session uuid; a missing session means
				// the token was revoked or already cleaned up.
				sessionUUID, err := uuid.Parse(claims.Id)
				if err != nil {
					logger.Debug().Msg("token carries no session uuid")
					writeError(w, http.StatusUnauthorized, "invalid bearer token")
					return
				}

				session, err := sessions.GetSession(sessionUUID)
				if err != nil || session == nil {
					logger.Debug().Str("session_uuid", claims.Id).Msg("session revoked or expired")
					writeError(w, http.StatusUnauthorized, "token revoked or expired")
					return
				}
				if time.Now().After(session.ExpiresAt) {
					writeError(w, http.StatusUnauthorized, "token revoked or expired")
					return
				}

				// Add the token and claims to the context
				ctx := context.WithValue(r.Context(), TokenKey, token)
				ctx = context.WithValue(ctx, ClaimsKey, claims)

				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// RequireACL guards a route with a permission template. Path variables in
// the template (e.g. {group_uuid}) are substituted from the request before
// matching against the caller's ACL.
func RequireACL(template string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context())

				claims, ok := r.Context().Value(ClaimsKey).(authn.Claims)
				if !ok {
					logger.Warn().Msg("acl check without token claims")
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}

				required := template
				for name, value := range mux.Vars(r) {
					required = strings.ReplaceAll(required, "{"+name+"}", value)
				}

				if !authn.MatchACL(claims.ACL, required, claims.UserUUID) {
					logger.Warn().
						Str("user_uuid", claims.UserUUID).
						Str("required_acl", required).
						Msg("insufficient permissions")
					writeError(w, http.StatusUnauthorized, "insufficient permissions")
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}

// WithLogger adds a logger to the context and logs request information.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			logger := log.With().
				Str("host", r.Host).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote_addr", r.RemoteAddr).
				Time("timestamp", time.Now()).
				Logger()

			// Add the logger to the context
			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	kind := models.ErrKindUnauthorized
	if statusCode != http.StatusUnauthorized {
		kind = models.ErrKindInternal
	}
	json.NewEncoder(w).Encode(models.APIError{Kind: kind, Message: message})
}
