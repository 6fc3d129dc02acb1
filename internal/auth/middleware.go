package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the resolved {account id, role} of a verified request. It is
// built from the live user row, not from token claims, so a deleted account
// or downgraded role takes effect on the next request.
type Identity struct {
	UserID int64
	Role   models.Role
}

// UserResolver resolves a token's embedded id to a live account.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Middleware creates a middleware that authenticates requests. It validates
// the bearer token, resolves the account, and attaches an Identity to the
// request context.
func Middleware(tokenManager *TokenManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing token", false)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, http.StatusUnauthorized, "invalid authorization header", false)
				return
			}

			claims, err := tokenManager.ValidateToken(parts[1])
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					// Distinct marker so clients can re-authenticate
					// silently instead of forcing a full logout.
					writeAuthError(w, http.StatusUnauthorized, "token expired", true)
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "invalid token", false)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					// Stale token for a deleted account.
					writeAuthError(w, http.StatusUnauthorized, "invalid token", false)
					return
				}
				log.Printf("auth: user lookup failed: %v", err)
				writeAuthError(w, http.StatusInternalServerError, "internal server error", false)
				return
			}

			identity := Identity{UserID: user.ID, Role: user.Role}
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the identity attached by Middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// RequireAdmin gates a route on the admin role. It must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing token", false)
			return
		}
		if identity.Role != models.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "admin privileges required", false)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string, expired bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{"error": message}
	if expired {
		body["expired"] = true
	}
	json.NewEncoder(w).Encode(body)
}
