package main

import (
	"encoding/json"
	"fmt"
	"os"

	"mernspace-auth/config"
)

// HostPublicKeysLocally derives the public JWK from the private key and
// writes it as a JWKS for static hosting.
func HostPublicKeysLocally(privatePath, jwksPath string) error {
	raw, err := os.ReadFile(privatePath)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}
	private, err := config.ParsePrivateKey(raw)
	if err != nil {
		return err
	}
	public, err := config.PublicKeyOf(private)
	if err != nil {
		return err
	}
	set, err := config.PublicJWKS(public)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JWKS: %w", err)
	}
	return writeFile(jwksPath, jsonBytes, 0644)
}
