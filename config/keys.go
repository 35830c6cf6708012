package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// KeyPair holds the RS256 key material for access tokens. Public is derived
// from Private unless JWKS_URI points at a remote key set.
type KeyPair struct {
	Private jwk.Key
	Public  jwk.Key
}

func loadKeyPair() (KeyPair, error) {
	raw, err := readPrivateKeyPEM()
	if err != nil {
		return KeyPair{}, err
	}
	private, err := ParsePrivateKey(raw)
	if err != nil {
		return KeyPair{}, err
	}

	if uri := os.Getenv("JWKS_URI"); uri != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		public, err := FetchPublicKey(ctx, uri)
		if err != nil {
			return KeyPair{}, err
		}
		return KeyPair{Private: private, Public: public}, nil
	}

	public, err := PublicKeyOf(private)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Private: private, Public: public}, nil
}

func readPrivateKeyPEM() ([]byte, error) {
	if inline := os.Getenv("PRIVATE_KEY"); inline != "" {
		// keys passed through single-line env vars arrive with escaped newlines
		return []byte(strings.ReplaceAll(inline, `\n`, "\n")), nil
	}
	path := envStr("PRIVATE_KEY_FILE", "certs/private.pem")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("PRIVATE_KEY or PRIVATE_KEY_FILE is required: %w", err)
	}
	return raw, nil
}

// ParsePrivateKey parses a PEM encoded RSA private key.
func ParsePrivateKey(pem []byte) (jwk.Key, error) {
	key, err := jwk.ParseKey(pem, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key in PEM format: %w", err)
	}
	if _, ok := key.(jwk.RSAPrivateKey); !ok {
		return nil, errors.New("private key must be an RSA private key")
	}
	return key, nil
}

// PublicKeyOf derives the verification key published in the JWKS.
func PublicKeyOf(private jwk.Key) (jwk.Key, error) {
	public, err := jwk.PublicKeyOf(private)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	if err := public.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, err
	}
	if err := public.Set(jwk.AlgorithmKey, jwa.RS256()); err != nil {
		return nil, err
	}
	return public, nil
}

// FetchPublicKey downloads a JWKS and returns its first key.
func FetchPublicKey(ctx context.Context, uri string) (jwk.Key, error) {
	set, err := jwk.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", uri, err)
	}
	key, ok := set.Key(0)
	if !ok {
		return nil, fmt.Errorf("JWKS at %s has no keys", uri)
	}
	return key, nil
}

// PublicJWKS wraps the verification key in the set served at
// /.well-known/jwks.json.
func PublicJWKS(public jwk.Key) (jwk.Set, error) {
	if public == nil {
		return nil, errors.New("no public key configured")
	}
	set := jwk.NewSet()
	if err := set.AddKey(public); err != nil {
		return nil, fmt.Errorf("failed to add key to JWKS: %w", err)
	}
	return set, nil
}
