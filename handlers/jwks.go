package handlers

import (
	"encoding/json"
	"net/http"

	"mernspace-auth/config"

	"go.uber.org/zap"
)

// SetupJWKSRoute serves the access-token verification key so other services
// can validate tokens without sharing the private key.
func SetupJWKSRoute(mux *http.ServeMux, keys config.KeyPair, logger *zap.SugaredLogger) error {
	set, err := config.PublicJWKS(keys.Public)
	if err != nil {
		return err
	}
	body, err := json.Marshal(set)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		if _, err := w.Write(body); err != nil {
			logger.Debugw("Failed to write JWKS", "error", err)
		}
	})
	return nil
}
