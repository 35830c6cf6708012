package handlers

import (
	"net/http"

	"mernspace-auth/config"
	"mernspace-auth/middlewares"
	"mernspace-auth/rbac"
	"mernspace-auth/services"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Config  *config.AppConfig
	DB      *gorm.DB
	Redis   *redis.Client
	Auth    *services.AuthService
	Users   *services.UserService
	Tenants *services.TenantService
	Tokens  *services.TokenService
	Logger  *zap.SugaredLogger
}

// NewRouter wires every route onto one ServeMux and wraps it with the global
// middleware stack.
func NewRouter(d Deps) (http.Handler, error) {
	mux := http.NewServeMux()

	am := middlewares.NewAuthMiddleware(d.Tokens, d.Logger)
	adminOnly := middlewares.ChainMiddleware(am.RequireAuth, middlewares.RequireRole(d.Logger, rbac.AdminOnly...))
	limit := middlewares.RateLimit(d.Config.RateLimit, d.Redis, d.Logger)

	SetupHealthRoutes(mux, d.DB, d.Redis)
	if err := SetupJWKSRoute(mux, d.Config.Keys, d.Logger); err != nil {
		return nil, err
	}
	SetupAuthRoutes(mux, d.Auth, am, limit, d.Config, d.Logger)
	SetupTenantRoutes(mux, d.Tenants, adminOnly, d.Logger)
	SetupUserRoutes(mux, d.Users, adminOnly, d.Logger)

	var handler http.Handler = mux
	for _, mw := range globalMiddlewares(d.Config, d.Logger) {
		handler = mw(handler)
	}
	return handler, nil
}

// globalMiddlewares lists the outer stack innermost first. RemoteAddr is only
// rewritten from forwarding headers when the proxy is trusted.
func globalMiddlewares(cfg *config.AppConfig, logger *zap.SugaredLogger) []middlewares.MiddlewareFunc {
	stack := []middlewares.MiddlewareFunc{
		middlewares.RequestLogger(logger),
		chimiddleware.Recoverer,
	}
	if cfg.TrustProxy {
		stack = append(stack, chimiddleware.RealIP)
	}
	return append(stack, chimiddleware.RequestID)
}
