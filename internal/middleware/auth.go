package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// WithUser returns a context carrying the given identity.
func WithUser(ctx context.Context, userID, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UsernameKey, username)
}

// RequireAuth returns an interceptor that validates the bearer token and adds
// the user's identity to the context. Procedures listed in public skip the
// check but still receive the identity when a valid token is sent.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := claimsFromHeader(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				if open[req.Spec().Procedure] {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithUser(ctx, claims.UserID, claims.Username), req)
		}
	}
}

// OptionalAuth returns an interceptor that adds the user's identity when a
// valid token is present and lets every request through.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if claims, err := claimsFromHeader(jwtManager, req.Header().Get("Authorization")); err == nil {
				ctx = WithUser(ctx, claims.UserID, claims.Username)
			}
			return next(ctx, req)
		}
	}
}

func claimsFromHeader(jwtManager *auth.JWTManager, header string) (*auth.Claims, error) {
	if header == "" {
		return nil, auth.ErrMissingToken
	}

	// Parse Bearer token
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(parts[1])
}
