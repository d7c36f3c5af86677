package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port                 int    `env:"PORT" envDefault:"8080"`
	FirebaseCredentials  string `env:"FIREBASE_CREDENTIALS" envDefault:"firebase-credentials.json"`
	StorageBucket        string `env:"FIREBASE_STORAGE_BUCKET"`
	RedisURL             string `env:"REDIS_URL,required"`
	AdminSecretKey       string `env:"ADMIN_SECRET_KEY,required"`
	AdminRegistrationKey string `env:"ADMIN_REGISTRATION_KEY,required"`
	TokenTTLHours        int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	AuditRetentionDays   int    `env:"AUDIT_RETENTION_DAYS" envDefault:"90"`
	LogLevel             string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) AuditRetention() time.Duration {
	return time.Duration(c.AuditRetentionDays) * 24 * time.Hour
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if err := validateSecret("ADMIN_SECRET_KEY", c.AdminSecretKey); err != nil {
			return err
		}
		if err := validateSecret("ADMIN_REGISTRATION_KEY", c.AdminRegistrationKey); err != nil {
			return err
		}
		if c.StorageBucket == "" {
			log.Warn().Msg("FIREBASE_STORAGE_BUCKET is empty in production: profile picture uploads disabled")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
