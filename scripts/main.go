package main

import (
	"flag"
	"os"

	"mernspace-auth/config"
)

func main() {
	arg := flag.String("arg", "", "Name of the script to run: generate-rsa-keys or host-pubkey-locally.")
	privatePath := flag.String("private", "certs/private.pem", "Path of the RSA private key.")
	publicPath := flag.String("public", "certs/public.pem", "Path of the RSA public key.")
	jwksPath := flag.String("jwks", "public/.well-known/jwks.json", "Path of the JWKS file to write.")
	flag.Parse()

	logger, err := config.NewLogger("development")
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	switch *arg {
	case "generate-rsa-keys":
		err = GenerateRsaKeys(*privatePath, *publicPath)
	case "host-pubkey-locally":
		err = HostPublicKeysLocally(*privatePath, *jwksPath)
	default:
		logger.Fatalf("Script %q does not exist", *arg)
	}
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infow("Script finished", "script", *arg)
}
