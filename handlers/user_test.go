package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"mernspace-auth/models"
	"mernspace-auth/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Manager(t *testing.T) {
	app := newTestApp(t)
	admin := app.accessCookie(t, testutil.SeedUser(t, app.db, "admin@mern.space", models.AdminRole, "password1"))

	tenant := app.do(t, http.MethodPost, "/tenants", pizzaHub, admin)
	require.Equal(t, http.StatusCreated, tenant.Code)
	tenantID := decode[idResponse](t, tenant).ID

	rec := app.do(t, http.MethodPost, "/users", map[string]any{
		"firstName": "Mina",
		"lastName":  "S",
		"email":     "mina@mern.space",
		"password":  "password1",
		"role":      "manager",
		"tenantId":  tenantID,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[idResponse](t, rec).ID

	var stored models.User
	require.NoError(t, app.db.First(&stored, id).Error)
	assert.Equal(t, models.ManagerRole, stored.Role)
	require.NotNil(t, stored.TenantID)
	assert.Equal(t, tenantID, *stored.TenantID)
}

func TestCreateUser_Rejections(t *testing.T) {
	app := newTestApp(t)
	adminUser := testutil.SeedUser(t, app.db, "admin@mern.space", models.AdminRole, "password1")
	admin := app.accessCookie(t, adminUser)
	manager := app.accessCookie(t, testutil.SeedUser(t, app.db, "m@mern.space", models.ManagerRole, "password1"))

	body := map[string]any{
		"firstName": "Mina", "lastName": "S", "email": "mina@mern.space",
		"password": "password1", "role": "manager",
	}
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPost, "/users", body, manager).Code)

	body["role"] = "root"
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/users", body, admin).Code)

	body["role"] = "manager"
	body["tenantId"] = 999
	rec := app.do(t, http.MethodPost, "/users", body, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tenant not found", errorsOf(t, rec)[0].Message)

	delete(body, "tenantId")
	body["email"] = adminUser.Email
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/users", body, admin).Code)
}

func TestUserCRUD(t *testing.T) {
	app := newTestApp(t)
	admin := app.accessCookie(t, testutil.SeedUser(t, app.db, "admin@mern.space", models.AdminRole, "password1"))
	target := testutil.SeedUser(t, app.db, "c@mern.space", models.CustomerRole, "password1")
	path := fmt.Sprintf("/users/%d", target.ID)

	rec := app.do(t, http.MethodPatch, path, map[string]string{"firstName": "Chandra", "role": "manager"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, path, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, "Chandra", got["firstName"])
	assert.Equal(t, "manager", got["role"])
	assert.NotContains(t, got, "password")

	rec = app.do(t, http.MethodGet, "/users?q=chandra", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[listResponse[models.User]](t, rec)
	require.Len(t, page.Data, 1)
	assert.Equal(t, target.ID, page.Data[0].ID)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, path, nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, path, nil, admin).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPatch, path, map[string]string{"lastName": "X"}, admin).Code)
}

func TestDeletedUserLosesRefreshTokens(t *testing.T) {
	app := newTestApp(t)
	admin := app.accessCookie(t, testutil.SeedUser(t, app.db, "admin@mern.space", models.AdminRole, "password1"))

	reg := app.do(t, http.MethodPost, "/auth/register", validRegistration)
	require.Equal(t, http.StatusCreated, reg.Code)
	id := decode[idResponse](t, reg).ID

	require.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, admin).Code)
	assert.Zero(t, testutil.RefreshTokenCount(t, app.db, id))
}

func TestUpdateUser_TenantAssignment(t *testing.T) {
	app := newTestApp(t)
	admin := app.accessCookie(t, testutil.SeedUser(t, app.db, "admin@mern.space", models.AdminRole, "password1"))
	manager := testutil.SeedUser(t, app.db, "m@mern.space", models.ManagerRole, "password1")
	path := fmt.Sprintf("/users/%d", manager.ID)

	tenant := app.do(t, http.MethodPost, "/tenants", pizzaHub, admin)
	require.Equal(t, http.StatusCreated, tenant.Code)
	tenantID := decode[idResponse](t, tenant).ID

	stored := func() *uint {
		var u models.User
		require.NoError(t, app.db.First(&u, manager.ID).Error)
		return u.TenantID
	}

	require.Equal(t, http.StatusOK, app.do(t, http.MethodPatch, path, map[string]any{"tenantId": tenantID}, admin).Code)
	require.NotNil(t, stored())

	require.Equal(t, http.StatusOK, app.do(t, http.MethodPatch, path, map[string]any{"lastName": "Q"}, admin).Code)
	require.NotNil(t, stored(), "absent tenantId leaves the tenant alone")

	require.Equal(t, http.StatusOK, app.do(t, http.MethodPatch, path, map[string]any{"tenantId": nil}, admin).Code)
	assert.Nil(t, stored())

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPatch, path, map[string]any{"tenantId": 0}, admin).Code)
}
