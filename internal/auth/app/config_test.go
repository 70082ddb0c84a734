package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/emailauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var strongSecret = strings.Repeat("s", 32)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("AUTH_CONFIG_FILE", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("DELIVERY_MODE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Minute, cfg.EmailCodeTTL)
	require.Equal(t, 12*time.Hour, cfg.APITokenTTL)
	require.Equal(t, 24*time.Hour, cfg.CodeRetention)
	require.Equal(t, DeliveryLog, cfg.DeliveryMode)
	require.Equal(t, "emailauth:outbox", cfg.Redis.OutboxKey)
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: prod
port: 9000
jwt_secret: ${TEST_AUTH_SECRET}
email_code_ttl: 5m
delivery_mode: smtp
site_name: Bartab
smtp:
  addr: mail.example.com:587
  from: login@example.com
`), 0o600))

	t.Setenv("AUTH_CONFIG_FILE", path)
	t.Setenv("TEST_AUTH_SECRET", strongSecret)
	t.Setenv("ENV", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("DELIVERY_MODE", "")
	t.Setenv("PORT", "9100")
	t.Setenv("AUTH_API_TOKEN_TTL", "90")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, strongSecret, cfg.JWTSecret)
	require.Equal(t, 5*time.Minute, cfg.EmailCodeTTL)
	require.Equal(t, DeliverySMTP, cfg.DeliveryMode)
	require.Equal(t, "mail.example.com:587", cfg.SMTP.Addr)
	require.Equal(t, "Bartab", cfg.SiteName)

	// environment wins over the file
	require.Equal(t, 9100, cfg.Port)
	// bare integers are minutes
	require.Equal(t, 90*time.Minute, cfg.APITokenTTL)
}

func TestLoadConfigBadFile(t *testing.T) {
	t.Setenv("AUTH_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	require.ErrorContains(t, err, "reading config file")
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "dev without secret", mutate: func(c *Config) {}},
		{
			name:    "prod without secret",
			mutate:  func(c *Config) { c.Env = "prod" },
			wantErr: "AUTH_JWT_SECRET",
		},
		{
			name:    "prod with short secret",
			mutate:  func(c *Config) { c.Env = "prod"; c.JWTSecret = "short" },
			wantErr: "AUTH_JWT_SECRET",
		},
		{
			name:   "prod with secret",
			mutate: func(c *Config) { c.Env = "prod"; c.JWTSecret = strongSecret },
		},
		{
			name:    "weak previous secret",
			mutate:  func(c *Config) { c.JWTPreviousSecrets = []string{"old"} },
			wantErr: "previous secret 1",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port",
		},
		{
			name:    "zero code ttl",
			mutate:  func(c *Config) { c.EmailCodeTTL = 0 },
			wantErr: "lifetimes",
		},
		{
			name:    "smtp without server",
			mutate:  func(c *Config) { c.DeliveryMode = DeliverySMTP },
			wantErr: "SMTP_ADDR",
		},
		{
			name:    "redis without address",
			mutate:  func(c *Config) { c.DeliveryMode = DeliveryRedis },
			wantErr: "REDIS_ADDR",
		},
		{
			name:    "unknown delivery",
			mutate:  func(c *Config) { c.DeliveryMode = "pigeon" },
			wantErr: "pigeon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestInitSecretRing(t *testing.T) {
	t.Parallel()
	logger := slogx.Discard()

	t.Run("dev generates a secret", func(t *testing.T) {
		ring, err := InitSecretRing(DefaultConfig(), logger)
		require.NoError(t, err)
		require.True(t, ring.IsReady())
	})

	t.Run("previous secrets verify only", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JWTSecret = strongSecret
		cfg.JWTPreviousSecrets = []string{strings.Repeat("p", 32)}

		ring, err := InitSecretRing(cfg, logger)
		require.NoError(t, err)
		require.Len(t, ring.All(), 2)

		_, current := ring.Current()
		require.Equal(t, []byte(strongSecret), current)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JWTSecret = "short"

		_, err := InitSecretRing(cfg, logger)
		require.Error(t, err)
	})
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "auth.db")
	cfg.LogLevel = "error"

	application, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.Handler())
	require.NoError(t, application.db.Close())
}
