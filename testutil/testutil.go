// Package testutil holds fixtures shared by package tests: a migrated SQLite
// database on a temp file and configuration with a throwaway RSA key.
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mernspace-auth/config"
	"mernspace-auth/database"
	"mernspace-auth/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const RefreshSecret = "test-refresh-secret"

var (
	keyOnce sync.Once
	keyPEM  []byte
	keyErr  error
)

// PrivateKeyPEM returns a PKCS#1 RSA key generated once per test binary.
func PrivateKeyPEM(t testing.TB) []byte {
	t.Helper()
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			keyErr = err
			return
		}
		keyPEM = pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		})
	})
	require.NoError(t, keyErr)
	return keyPEM
}

func NewConfig(t testing.TB) *config.AppConfig {
	t.Helper()
	private, err := config.ParsePrivateKey(PrivateKeyPEM(t))
	require.NoError(t, err)
	public, err := config.PublicKeyOf(private)
	require.NoError(t, err)

	return &config.AppConfig{
		Env:                "test",
		ServerPort:         "0",
		Keys:               config.KeyPair{Private: private, Public: public},
		RefreshTokenSecret: RefreshSecret,
		Issuer:             "auth-service",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    365 * 24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
		Cookie: config.CookieConfig{
			Domain:   "localhost",
			SameSite: http.SameSiteStrictMode,
		},
		AMQP:                 config.AMQPConfig{Exchange: "auth.events"},
		TokenCleanupInterval: time.Hour,
	}
}

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auth-test.db")
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SqlitePath: path}, NewLogger())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func NewLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// SeedUser stores a user whose password is hashed at the minimum bcrypt cost.
func SeedUser(t testing.TB, db *gorm.DB, email string, role models.Role, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FirstName: "Rakesh",
		LastName:  "K",
		Email:     email,
		Password:  string(hash),
		Role:      role,
	}
	require.NoError(t, db.Omit("Tenant").Create(user).Error)
	return user
}

func RefreshTokenCount(t testing.TB, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
