package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/emailauth/pkg/cryptox"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
)

// InitSecretRing builds the HS256 secret ring from configuration.
//
// The configured secret signs new carriers; previous secrets only verify,
// so carriers issued before a rotation keep working until their secret is
// removed from AUTH_JWT_PREVIOUS_SECRETS.
//
// In dev an unset secret is replaced with a random one. Carriers issued by
// such a process stop verifying when it restarts.
func InitSecretRing(cfg Config, logger *slog.Logger) (*jwtx.SecretRing, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.IsDev() {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate dev signing secret: %w", err)
		}
		secret = generated
		logger.Warn("AUTH_JWT_SECRET not set, using a random signing secret for this process",
			slog.String("env", cfg.Env),
		)
	}

	previous := make([][]byte, 0, len(cfg.JWTPreviousSecrets))
	for _, p := range cfg.JWTPreviousSecrets {
		previous = append(previous, []byte(p))
	}

	ring, err := jwtx.NewSecretRing([]byte(secret), previous...)
	if err != nil {
		return nil, fmt.Errorf("failed to build secret ring: %w", err)
	}

	kid, _ := ring.Current()
	logger.Info("signing secrets loaded",
		slog.String("kid", kid),
		slog.Int("verify_only", len(previous)),
	)
	return ring, nil
}
