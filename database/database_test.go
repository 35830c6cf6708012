package database

import (
	"errors"
	"path/filepath"
	"testing"

	"mernspace-auth/config"
	"mernspace-auth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func openSqlite(t *testing.T, log *zap.SugaredLogger) *gorm.DB {
	t.Helper()
	db, err := Open(config.DBConfig{Driver: "sqlite", SqlitePath: filepath.Join(t.TempDir(), "auth.db")}, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	require.NoError(t, Migrate(db))
	return db
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "auth.db?_foreign_keys=on", SqliteDSN("auth.db"))
	assert.Equal(t, "auth.db?cache=shared&_foreign_keys=on", SqliteDSN("auth.db?cache=shared"))
}

func TestOpenAndMigrate(t *testing.T) {
	db := openSqlite(t, zap.NewNop().Sugar())
	for _, table := range []string{"users", "tenants", "refresh_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DBConfig{Driver: "mongo"}, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestOpen_TranslatesUniqueViolation(t *testing.T) {
	db := openSqlite(t, zap.NewNop().Sugar())
	user := func() *models.User {
		return &models.User{Email: "dup@mern.space", Password: "x", Role: models.CustomerRole}
	}

	require.NoError(t, db.Omit("Tenant").Create(user()).Error)
	err := db.Omit("Tenant").Create(user()).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestGormLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	db := openSqlite(t, zap.New(core).Sugar())
	logs.TakeAll()

	var missing models.User
	assert.ErrorIs(t, db.First(&missing, 4242).Error, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len(), "record not found is not logged")

	const hash = "$2a$10$do-not-log-this-hash"
	stored := func() *models.User {
		return &models.User{Email: "dup@mern.space", Password: hash, Role: models.CustomerRole}
	}
	require.NoError(t, db.Omit("Tenant").Create(stored()).Error)
	require.Error(t, db.Omit("Tenant").Create(stored()).Error)

	entries := logs.TakeAll()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.NotContains(t, e.Message, hash)
		assert.Equal(t, zap.WarnLevel, e.Level)
	}
}
