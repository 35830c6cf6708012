package middlewares

import (
	"net/http"

	"mernspace-auth/helper"
	"mernspace-auth/models"
	"mernspace-auth/rbac"

	"go.uber.org/zap"
)

// RequireRole must run after RequireAuth.
func RequireRole(logger *zap.SugaredLogger, roles ...models.Role) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetAuthFromContext(r.Context())
			if !ok {
				helper.WriteError(w, logger, helper.Unauthorized("Authentication required"))
				return
			}
			if !rbac.CanAccess(roles, claims.Role) {
				helper.WriteError(w, logger, helper.Forbidden("You don't have enough permissions"))
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
