package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blackgoldunited/bguerp/internal/auth"
	"github.com/blackgoldunited/bguerp/internal/models"
	"github.com/blackgoldunited/bguerp/internal/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// AuthUser is the caller identity extracted from a validated token
type AuthUser struct {
	ID    string
	Email string
	Role  models.Role
}

// Authenticator verifies bearer tokens and enforces the module access matrix
type Authenticator struct {
	secret string
}

// NewAuthenticator creates an Authenticator with the JWT signing secret
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

// Authenticate verifies the JWT and stores the caller identity in the context
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateToken(parts[1], a.secret)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		user := AuthUser{}
		if id, ok := claims["id"].(string); ok {
			user.ID = id
		}
		if email, ok := claims["email"].(string); ok {
			user.Email = email
		}
		if role, ok := claims["role"].(string); ok {
			user.Role = models.Role(role)
		}
		if user.ID == "" {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireModule wraps a handler with the access-matrix check for one module.
// The HTTP method decides whether READ access is enough.
func (a *Authenticator) RequireModule(module string, next http.HandlerFunc) http.HandlerFunc {
	protected := a.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !auth.CanAccess(user.Role, module, r.Method) {
			http.Error(w, "Insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
	return protected.ServeHTTP
}

// UserFromContext returns the authenticated caller, if any
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(UserContextKey).(AuthUser)
	return user, ok
}
