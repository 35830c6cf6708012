package services

import (
	"context"
	"testing"

	"mernspace-auth/models"
	"mernspace-auth/repository"
	"mernspace-auth/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *TenantService) {
	t.Helper()
	db := testutil.NewDB(t)
	tenants := repository.NewTenantRepository(db)
	users := NewUserService(repository.NewUserRepository(db), tenants, NewCredentialService(bcrypt.MinCost))
	return users, NewTenantService(tenants)
}

func TestUserService_CreateWithTenant(t *testing.T) {
	users, tenants := newUserService(t)
	ctx := context.Background()

	tenant, err := tenants.Create(ctx, "Pizza Hub", "MG Road")
	require.NoError(t, err)

	user, err := users.Create(ctx, UserData{
		FirstName: "Mina", LastName: "S", Email: "mina@mern.space",
		Password: "password1", Role: models.ManagerRole, TenantID: &tenant.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, user.TenantID)
	assert.Equal(t, tenant.ID, *user.TenantID)
	assert.Equal(t, models.ManagerRole, user.Role)
}

func TestUserService_CreateUnknownTenant(t *testing.T) {
	users, _ := newUserService(t)
	missing := uint(77)

	_, err := users.Create(context.Background(), UserData{
		FirstName: "Mina", LastName: "S", Email: "mina@mern.space",
		Password: "password1", Role: models.ManagerRole, TenantID: &missing,
	})
	assert.ErrorIs(t, err, repository.ErrTenantNotFound)
}

func TestUserService_CreateDefaultsToCustomer(t *testing.T) {
	users, _ := newUserService(t)

	user, err := users.Create(context.Background(), UserData{
		FirstName: "A", LastName: "B", Email: "ab@mern.space", Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerRole, user.Role)
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	users, _ := newUserService(t)
	ctx := context.Background()

	user, err := users.Create(ctx, UserData{
		FirstName: "A", LastName: "B", Email: "ab@mern.space", Password: "password1",
	})
	require.NoError(t, err)

	name := "Alpha"
	role := models.ManagerRole
	require.NoError(t, users.Update(ctx, user.ID, repository.UserUpdate{FirstName: &name, Role: &role}))

	got, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.FirstName)
	assert.Equal(t, "B", got.LastName)
	assert.Equal(t, models.ManagerRole, got.Role)

	require.NoError(t, users.DeleteByID(ctx, user.ID))
	assert.ErrorIs(t, users.DeleteByID(ctx, user.ID), repository.ErrUserNotFound)
}

// racingUsers behaves as if another request inserted the email between the
// lookup and the insert.
type racingUsers struct {
	repository.UserRepository
}

func (racingUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func (racingUsers) Create(context.Context, *models.User) error {
	return repository.ErrEmailTaken
}

func TestUserService_CreateLosesInsertRace(t *testing.T) {
	users := NewUserService(racingUsers{}, nil, NewCredentialService(bcrypt.MinCost))

	_, err := users.Create(context.Background(), UserData{
		FirstName: "A", LastName: "B", Email: "ab@mern.space", Password: "password1",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}
