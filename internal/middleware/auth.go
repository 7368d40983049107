package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
	"hrms-backend/pkg/utils"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"
const TokenIDKey contextKey = "token_id"
const TokenExpiryKey contextKey = "token_expiry"

// TokenValidator is implemented by auth.JWTManager.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// UserLookup loads the current account state on every request.
type UserLookup interface {
	Get(ctx context.Context, id int) (*models.User, error)
}

// RevocationChecker is implemented by cache.TokenStore.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

type AuthMiddleware struct {
	tokens  TokenValidator
	users   UserLookup
	revoked RevocationChecker
}

// NewAuthMiddleware wires token checks. revoked may be nil.
func NewAuthMiddleware(tokens TokenValidator, users UserLookup, revoked RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revoked: revoked}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.Detail(w, http.StatusUnauthorized, "Could not validate credentials")
}

// authenticate resolves the bearer token to a live, active account. It writes
// the error response itself and returns ok=false on failure.
func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*models.User, *auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		unauthorized(w)
		return nil, nil, false
	}

	claims, err := m.tokens.ValidateToken(parts[1])
	if err != nil {
		unauthorized(w)
		return nil, nil, false
	}
	if m.revoked != nil && claims.ID != "" && m.revoked.IsRevoked(r.Context(), claims.ID) {
		unauthorized(w)
		return nil, nil, false
	}

	// Account state comes from the database so deactivation applies immediately
	user, err := m.users.Get(r.Context(), claims.UserID)
	if err != nil {
		unauthorized(w)
		return nil, nil, false
	}
	if !user.IsActive {
		utils.Detail(w, http.StatusForbidden, "Inactive user")
		return nil, nil, false
	}
	return user, claims, true
}

func withUser(r *http.Request, user *models.User, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
	ctx = context.WithValue(ctx, EmailKey, user.Email)
	ctx = context.WithValue(ctx, RoleKey, user.Role)
	ctx = context.WithValue(ctx, TokenIDKey, claims.ID)
	if claims.ExpiresAt != nil {
		ctx = context.WithValue(ctx, TokenExpiryKey, claims.ExpiresAt.Time)
	}
	if info := requestInfoFrom(ctx); info != nil {
		info.userID = user.ID
	}
	return r.WithContext(ctx)
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, withUser(r, user, claims))
	})
}

// AllowRoles checks the role Authenticate already stored on the context. It
// must run behind Authenticate; a request without a role is rejected.
func AllowRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if !auth.HasRole(role, allowedRoles...) {
				utils.Detail(w, http.StatusForbidden, "Not enough permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin admits administrators only. Like AllowRoles it runs behind Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return AllowRoles(models.RoleAdmin)(next)
}

// RequirePrivileged admits admins and HR officers
func RequirePrivileged(next http.Handler) http.Handler {
	return AllowRoles(auth.PrivilegedRoles...)(next)
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// ActorFromContext returns the authenticated caller
func ActorFromContext(ctx context.Context) (auth.Actor, bool) {
	id, ok := GetUserIDFromContext(ctx)
	if !ok {
		return auth.Actor{}, false
	}
	email, _ := ctx.Value(EmailKey).(string)
	role, _ := GetRoleFromContext(ctx)
	return auth.Actor{UserID: id, Email: email, Role: role}, true
}

// TokenFromContext returns the id and expiry of the presented token
func TokenFromContext(ctx context.Context) (string, time.Time) {
	id, _ := ctx.Value(TokenIDKey).(string)
	exp, _ := ctx.Value(TokenExpiryKey).(time.Time)
	return id, exp
}
