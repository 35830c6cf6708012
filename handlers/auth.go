package handlers

import (
	"net/http"
	"time"

	"mernspace-auth/config"
	"mernspace-auth/dto"
	"mernspace-auth/helper"
	"mernspace-auth/middlewares"
	"mernspace-auth/services"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *services.AuthService
	cfg    *config.AppConfig
	logger *zap.SugaredLogger
}

type idResponse struct {
	ID uint `json:"id"`
}

// SetupAuthRoutes mounts the /auth endpoints. limit guards the credential
// endpoints against brute force.
func SetupAuthRoutes(mux *http.ServeMux, auth *services.AuthService, am *middlewares.AuthMiddleware, limit middlewares.Middleware, cfg *config.AppConfig, logger *zap.SugaredLogger) {
	handler := AuthHandler{
		auth:   auth,
		cfg:    cfg,
		logger: logger,
	}
	mux.HandleFunc("POST /auth/register", limit(handler.register))
	mux.HandleFunc("POST /auth/login", limit(handler.login))
	mux.HandleFunc("GET /auth/self", am.RequireAuth(handler.self))
	mux.HandleFunc("POST /auth/refresh", am.RequireRefresh(handler.refresh))
	mux.HandleFunc("POST /auth/logout", middlewares.ChainMiddleware(am.RequireAuth, am.RequireRefresh)(handler.logout))
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var payload dto.RegisterUserDto
	if err := helper.ReadAndValidate(w, r, &payload); err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}

	h.logger.Debugw("New request to register user",
		"firstName", payload.FirstName,
		"lastName", payload.LastName,
		"email", payload.Email,
		"password", "********",
	)

	session, err := h.auth.Register(r.Context(), services.RegisterInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
	})
	if err != nil {
		helper.WriteError(w, h.logger, httpErrorOf(err))
		return
	}

	h.setCookies(w, session.Tokens)
	helper.WriteJson(w, http.StatusCreated, idResponse{ID: session.UserID})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var payload dto.LoginUserDto
	if err := helper.ReadAndValidate(w, r, &payload); err != nil {
		helper.WriteError(w, h.logger, err)
		return
	}

	h.logger.Debugw("New request to login a user", "email", payload.Email, "password", "********")

	session, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		helper.WriteError(w, h.logger, httpErrorOf(err))
		return
	}

	h.setCookies(w, session.Tokens)
	helper.WriteJson(w, http.StatusOK, idResponse{ID: session.UserID})
}

func (h *AuthHandler) self(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewares.GetAuthFromContext(r.Context())
	if !ok {
		helper.WriteError(w, h.logger, helper.Unauthorized("Authentication required"))
		return
	}
	user, err := h.auth.Self(r.Context(), claims.Subject)
	if err != nil {
		helper.WriteError(w, h.logger, httpErrorOf(err))
		return
	}
	helper.WriteJson(w, http.StatusOK, user)
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewares.GetRefreshFromContext(r.Context())
	if !ok {
		helper.WriteError(w, h.logger, helper.Unauthorized("Refresh token required"))
		return
	}
	session, err := h.auth.Refresh(r.Context(), claims)
	if err != nil {
		helper.WriteError(w, h.logger, httpErrorOf(err))
		return
	}

	h.setCookies(w, session.Tokens)
	helper.WriteJson(w, http.StatusOK, idResponse{ID: session.UserID})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewares.GetRefreshFromContext(r.Context())
	if !ok {
		helper.WriteError(w, h.logger, helper.Unauthorized("Refresh token required"))
		return
	}
	if err := h.auth.Logout(r.Context(), claims); err != nil {
		helper.WriteError(w, h.logger, httpErrorOf(err))
		return
	}

	h.clearCookies(w)
	helper.WriteJson(w, http.StatusOK, struct{}{})
}

func (h *AuthHandler) setCookies(w http.ResponseWriter, pair services.TokenPair) {
	http.SetCookie(w, h.cookie(middlewares.AccessTokenCookie, pair.AccessToken, h.cfg.AccessTokenTTL))
	http.SetCookie(w, h.cookie(middlewares.RefreshTokenCookie, pair.RefreshToken, h.cfg.RefreshTokenTTL))
}

func (h *AuthHandler) clearCookies(w http.ResponseWriter) {
	for _, name := range []string{middlewares.AccessTokenCookie, middlewares.RefreshTokenCookie} {
		c := h.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (h *AuthHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
	}
}
