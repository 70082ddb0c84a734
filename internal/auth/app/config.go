package app

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/delivery"
	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"gopkg.in/yaml.v3"
)

// Delivery modes.
const (
	DeliveryLog   = "log"
	DeliverySMTP  = "smtp"
	DeliveryRedis = "redis"
)

type Config struct {
	Env                  string        `yaml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `yaml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `yaml:"log_format"`            // Log format (json, text) (default: json)
	Port                 int           `yaml:"port"`                  // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval"` // Housekeeping interval (default: 1h)
	DatabaseFile         string        `yaml:"database_file"`         // Path to SQLite database file (default: ./auth.db)

	JWTSecret          string   `yaml:"jwt_secret"`           // Required outside dev: HS256 signing secret
	JWTPreviousSecrets []string `yaml:"jwt_previous_secrets"` // Optional: retired secrets still accepted for verification

	EmailCodeTTL  time.Duration `yaml:"email_code_ttl"` // Lifetime of an emailed code (default: 10m)
	APITokenTTL   time.Duration `yaml:"api_token_ttl"`  // Lifetime of an API token (default: 12h)
	CodeRetention time.Duration `yaml:"code_retention"` // How long expired codes keep their value (default: 24h)

	DeliveryMode string      `yaml:"delivery_mode"` // log, smtp or redis (default: log)
	SiteName     string      `yaml:"site_name"`     // Shown in delivered messages (default: emailauth)
	SMTP         SMTPConfig  `yaml:"smtp"`
	Redis        RedisConfig `yaml:"redis"`
}

type SMTPConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	OutboxKey string `yaml:"outbox_key"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: 1 * time.Hour,
		DatabaseFile:         "auth.db",
		EmailCodeTTL:         service.DefaultCodeTTL,
		APITokenTTL:          service.DefaultAPITokenTTL,
		CodeRetention:        service.DefaultCodeRetention,
		DeliveryMode:         DeliveryLog,
		SiteName:             "emailauth",
		Redis:                RedisConfig{OutboxKey: delivery.DefaultOutboxKey},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by AUTH_CONFIG_FILE, and the environment, in that order.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("AUTH_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// loadFile overlays a YAML file. ${VAR} references are expanded first.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() {
	c.Env = getEnvOrDefault("ENV", c.Env)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("LOG_FORMAT", c.LogFormat)
	c.Port = getEnvIntOrDefault("PORT", c.Port)
	c.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", c.ShutdownGracePeriod)
	c.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", c.HousekeepingInterval)
	c.DatabaseFile = getEnvOrDefault("AUTH_DATABASE_FILE", c.DatabaseFile)

	c.JWTSecret = getEnvOrDefault("AUTH_JWT_SECRET", c.JWTSecret)
	if prev := os.Getenv("AUTH_JWT_PREVIOUS_SECRETS"); prev != "" {
		c.JWTPreviousSecrets = splitList(prev)
	}

	c.EmailCodeTTL = getEnvDurationOrDefault("AUTH_EMAIL_CODE_TTL", c.EmailCodeTTL)
	c.APITokenTTL = getEnvDurationOrDefault("AUTH_API_TOKEN_TTL", c.APITokenTTL)
	c.CodeRetention = getEnvDurationOrDefault("AUTH_CODE_RETENTION", c.CodeRetention)

	c.DeliveryMode = strings.ToLower(getEnvOrDefault("DELIVERY_MODE", c.DeliveryMode))
	c.SiteName = getEnvOrDefault("SITE_NAME", c.SiteName)
	c.SMTP.Addr = getEnvOrDefault("SMTP_ADDR", c.SMTP.Addr)
	c.SMTP.Username = getEnvOrDefault("SMTP_USERNAME", c.SMTP.Username)
	c.SMTP.Password = getEnvOrDefault("SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.From = getEnvOrDefault("SMTP_FROM", c.SMTP.From)
	c.Redis.Addr = getEnvOrDefault("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.OutboxKey = getEnvOrDefault("REDIS_OUTBOX_KEY", c.Redis.OutboxKey)
}

// IsDev reports whether the service runs in the development environment.
func (c *Config) IsDev() bool { return c.Env == "dev" }

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if !c.IsDev() && len(c.JWTSecret) < jwtx.MinSecretBytes {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes outside dev", jwtx.MinSecretBytes)
	}
	for i, s := range c.JWTPreviousSecrets {
		if len(s) < jwtx.MinSecretBytes {
			return fmt.Errorf("previous secret %d must be at least %d bytes", i+1, jwtx.MinSecretBytes)
		}
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DatabaseFile == "" {
		return errors.New("database file is required")
	}
	if c.EmailCodeTTL <= 0 || c.APITokenTTL <= 0 {
		return errors.New("code and token lifetimes must be positive")
	}
	if c.CodeRetention < 0 || c.HousekeepingInterval <= 0 {
		return errors.New("housekeeping interval must be positive and code retention non-negative")
	}

	switch c.DeliveryMode {
	case DeliveryLog:
	case DeliverySMTP:
		if c.SMTP.Addr == "" || c.SMTP.From == "" {
			return errors.New("smtp delivery requires SMTP_ADDR and SMTP_FROM")
		}
	case DeliveryRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis delivery requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown delivery mode %q", c.DeliveryMode)
	}

	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value, or nothing
// when it is unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
