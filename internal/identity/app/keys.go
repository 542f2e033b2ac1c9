package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kindlinghq/kindling/pkg/jwtx"
)

// initSigner loads the Ed25519 signing key from disk when configured, or
// generates an ephemeral one. The public key can be written out so verifying
// services pick it up from their own configuration.
func initSigner(cfg Config, logger *slog.Logger) (jwtx.Signer, error) {
	var (
		signer *jwtx.EdDSASigner
		err    error
	)

	if cfg.SigningKeyFile != "" {
		pemKey, readErr := os.ReadFile(cfg.SigningKeyFile)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read signing key: %w", readErr)
		}
		signer, err = jwtx.NewEdDSASignerFromPEM("identity-1", pemKey)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded signing key", "file", cfg.SigningKeyFile)
	} else {
		signer, err = jwtx.NewEdDSASigner("identity-1")
		if err != nil {
			return nil, err
		}
		logger.Info("generated ephemeral signing key; sessions won't survive restart")
	}

	if cfg.PublicKeyFile != "" {
		pemPub, err := jwtx.MarshalPublicKey(signer.Public())
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cfg.PublicKeyFile, pemPub, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write public key: %w", err)
		}
		logger.Info("published session public key", "file", cfg.PublicKeyFile)
	}

	return signer, nil
}
