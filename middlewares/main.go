package middlewares

import (
	"context"
	"net/http"

	"mernspace-auth/services"
)

type ContextKey string

const (
	AuthContextKey    ContextKey = "auth"
	RefreshContextKey ContextKey = "refresh"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Middleware type - function that wraps http.HandlerFunc
type Middleware func(http.HandlerFunc) http.HandlerFunc

// MiddlewareFunc type - function that wraps http.Handler
type MiddlewareFunc func(http.Handler) http.Handler

func ChainMiddleware(middlewares ...Middleware) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// GetAuthFromContext returns the caller attached by RequireAuth.
func GetAuthFromContext(ctx context.Context) (services.AccessTokenPayload, bool) {
	p, ok := ctx.Value(AuthContextKey).(services.AccessTokenPayload)
	return p, ok
}

// GetRefreshFromContext returns the refresh claims attached by RequireRefresh.
func GetRefreshFromContext(ctx context.Context) (services.RefreshTokenPayload, bool) {
	p, ok := ctx.Value(RefreshContextKey).(services.RefreshTokenPayload)
	return p, ok
}
