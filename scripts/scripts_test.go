package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeysThenHostJWKS(t *testing.T) {
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "certs", "private.pem")
	publicPath := filepath.Join(dir, "certs", "public.pem")
	jwksPath := filepath.Join(dir, "public", ".well-known", "jwks.json")

	require.NoError(t, GenerateRsaKeys(privatePath, publicPath))
	info, err := os.Stat(privatePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, HostPublicKeysLocally(privatePath, jwksPath))
	raw, err := os.ReadFile(jwksPath)
	require.NoError(t, err)

	set, err := jwk.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	key, ok := set.Key(0)
	require.True(t, ok)
	_, isPrivate := key.(jwk.RSAPrivateKey)
	assert.False(t, isPrivate)
}

func TestHostPublicKeysLocally_MissingKey(t *testing.T) {
	dir := t.TempDir()
	err := HostPublicKeysLocally(filepath.Join(dir, "nope.pem"), filepath.Join(dir, "jwks.json"))
	assert.Error(t, err)
}
