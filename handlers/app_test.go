package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"mernspace-auth/config"
	"mernspace-auth/events"
	"mernspace-auth/helper"
	"mernspace-auth/middlewares"
	"mernspace-auth/models"
	"mernspace-auth/repository"
	"mernspace-auth/services"
	"mernspace-auth/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	handler http.Handler
	db      *gorm.DB
	cfg     *config.AppConfig
	tokens  *services.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := testutil.NewConfig(t)
	db := testutil.NewDB(t)
	logger := testutil.NewLogger()

	tenantRepo := repository.NewTenantRepository(db)
	credentials := services.NewCredentialService(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg, repository.NewRefreshTokenRepository(db), repository.NewTxManagerGorm(db))
	users := services.NewUserService(repository.NewUserRepository(db), tenantRepo, credentials)

	handler, err := NewRouter(Deps{
		Config:  cfg,
		DB:      db,
		Auth:    services.NewAuthService(users, credentials, tokens, events.NopPublisher{}, logger),
		Users:   users,
		Tenants: services.NewTenantService(tenantRepo),
		Tokens:  tokens,
		Logger:  logger,
	})
	require.NoError(t, err)
	return &testApp{handler: handler, db: db, cfg: cfg, tokens: tokens}
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// accessCookie signs an access token for an existing user.
func (a *testApp) accessCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	raw, err := a.tokens.GenerateAccessToken(services.AccessTokenPayload{
		Subject: strconv.FormatUint(uint64(user.ID), 10),
		Role:    user.Role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: middlewares.AccessTokenCookie, Value: raw}
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorsOf(t *testing.T, rec *httptest.ResponseRecorder) []helper.ErrorItem {
	return decode[helper.ErrorResponse](t, rec).Errors
}
