package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eventhub/eventhub/infrastructure/http/response"
	"github.com/eventhub/eventhub/infrastructure/service/jwt"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
)

type contextKey string

const AuthUserKey contextKey = "auth_user"

// TokenValidator decodes an access token into the requester identity.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.TokenClaims, error)
}

type AuthMiddleware struct {
	tokenService TokenValidator
	logger       logger.Logger
}

func NewAuthMiddleware(tokenService TokenValidator, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       log,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header required")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			logger.LogSecurityEvent(r.Context(), m.logger, "invalid_token", "LOW", map[string]interface{}{
				"path":   r.URL.Path,
				"reason": err.Error(),
			})
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := WithUserClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// proceeds anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithUserClaims stores the requester identity in ctx.
func WithUserClaims(ctx context.Context, claims *jwt.TokenClaims) context.Context {
	return context.WithValue(ctx, AuthUserKey, claims)
}

// GetUserClaims retrieves user claims from context
func GetUserClaims(ctx context.Context) *jwt.TokenClaims {
	if claims, ok := ctx.Value(AuthUserKey).(*jwt.TokenClaims); ok {
		return claims
	}
	return nil
}

// RequesterID returns the authenticated user id, or nil for anonymous requests.
func RequesterID(ctx context.Context) *int64 {
	claims := GetUserClaims(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}
