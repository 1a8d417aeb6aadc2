package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/lifecycle"
	"cafe-counter/internal/model"
)

// Principal identifies an authenticated caller.
type Principal struct {
	UserID uuid.UUID
	Role   lifecycle.Role
}

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFrom extracts the authenticated principal from the request
// context. The second return is false for guest requests.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Auth parses an optional bearer token and attaches the principal to the
// request context. Requests without an Authorization header pass through as
// guests; requests with a malformed or invalid token are rejected.
func Auth(secret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Authorization header must be a bearer token")
				return
			}

			principal, err := parseToken(raw, secret)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected bearer token")
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAuth rejects guest requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole restricts a route to the given roles. It implies RequireAuth.
func RequireRole(roles ...lifecycle.Role) func(http.Handler) http.Handler {
	allowed := make(map[lifecycle.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Authentication required")
				return
			}
			if _, ok := allowed[principal.Role]; !ok {
				writeAuthError(w, http.StatusForbidden, model.ErrCodeForbidden, "You do not have access to this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseToken verifies an HS256 token and extracts the subject and role claims.
func parseToken(raw, secret string) (*Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a valid user ID: %w", err)
	}

	role := lifecycle.RoleCustomer
	if rawRole, ok := claims["role"].(string); ok && rawRole != "" {
		role = lifecycle.Role(rawRole)
		if !role.IsValid() {
			return nil, fmt.Errorf("unknown role %q", rawRole)
		}
	}

	return &Principal{UserID: userID, Role: role}, nil
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: message}) //nolint:errcheck
}
