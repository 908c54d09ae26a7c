package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/abuabdirohman4/better-habit/pkg/jwt"
)

type contextKey string

const (
	ClientKey    contextKey = "client"
	RequestIDKey contextKey = "requestID"
)

// AuthMiddleware validates bearer tokens
type AuthMiddleware struct {
	tokens *jwt.TokenManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *jwt.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// Auth validates JWT token from Authorization header
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ClientKey, claims.Client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClient extracts the authenticated client name from request context
func GetClient(r *http.Request) string {
	client, ok := r.Context().Value(ClientKey).(string)
	if !ok {
		return ""
	}
	return client
}
