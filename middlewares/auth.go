package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mernspace-auth/helper"
	"mernspace-auth/services"

	"go.uber.org/zap"
)

type AuthMiddleware struct {
	tokens *services.TokenService
	logger *zap.SugaredLogger
}

func NewAuthMiddleware(tokens *services.TokenService, logger *zap.SugaredLogger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// RequireAuth verifies the access token from the accessToken cookie, falling
// back to an Authorization bearer header.
func (am *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := accessTokenFrom(r)
		if raw == "" {
			helper.WriteError(w, am.logger, helper.Unauthorized("Authentication required"))
			return
		}
		claims, err := am.tokens.ParseAccessToken(raw)
		if err != nil {
			am.reject(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), AuthContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRefresh verifies the refreshToken cookie and checks that its record
// has not been revoked.
func (am *AuthMiddleware) RequireRefresh(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(RefreshTokenCookie)
		if err != nil || cookie.Value == "" {
			helper.WriteError(w, am.logger, helper.Unauthorized("Refresh token required"))
			return
		}
		claims, err := am.tokens.VerifyRefreshToken(r.Context(), cookie.Value)
		if err != nil {
			am.reject(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), RefreshContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (am *AuthMiddleware) reject(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrRefreshTokenRevoked):
		am.logger.Debugw("Refresh token is revoked", "error", err)
		helper.WriteError(w, am.logger, helper.Unauthorized("Refresh token is revoked"))
	case errors.Is(err, services.ErrInvalidToken):
		am.logger.Debugw("Token rejected", "error", err)
		helper.WriteError(w, am.logger, helper.Unauthorized("Invalid token"))
	default:
		helper.WriteError(w, am.logger, helper.Internal(err))
	}
}

func accessTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}
