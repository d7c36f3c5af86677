package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("TokenTTL converts hours to duration", func(t *testing.T) {
		cfg := &Config{TokenTTLHours: 24}
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	})

	t.Run("AuditRetention converts days to duration", func(t *testing.T) {
		cfg := &Config{AuditRetentionDays: 90}
		assert.Equal(t, 90*24*time.Hour, cfg.AuditRetention())
	})
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "FIREBASE_CREDENTIALS", "FIREBASE_STORAGE_BUCKET", "REDIS_URL",
		"ADMIN_SECRET_KEY", "ADMIN_REGISTRATION_KEY", "TOKEN_TTL_HOURS",
		"AUDIT_RETENTION_DAYS", "LOG_LEVEL",
	}
	originalEnv := make(map[string]string, len(keys))
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("ADMIN_SECRET_KEY", "test-signing-secret")
		os.Setenv("ADMIN_REGISTRATION_KEY", "test-registration-key")
		os.Unsetenv("PORT")
		os.Unsetenv("FIREBASE_CREDENTIALS")
		os.Unsetenv("TOKEN_TTL_HOURS")
		os.Unsetenv("AUDIT_RETENTION_DAYS")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "firebase-credentials.json", cfg.FirebaseCredentials)
		assert.Equal(t, 24, cfg.TokenTTLHours)
		assert.Equal(t, 90, cfg.AuditRetentionDays)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("fails without required secrets", func(t *testing.T) {
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("ADMIN_SECRET_KEY")
		os.Unsetenv("ADMIN_REGISTRATION_KEY")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AdminSecretKey:       "0123456789abcdef0123456789abcdef",
			AdminRegistrationKey: "fedcba9876543210fedcba9876543210",
			StorageBucket:        "optima.appspot.com",
		}
	}

	t.Run("passes with strong secrets in production", func(t *testing.T) {
		assert.NoError(t, base().Validate(true))
	})

	t.Run("rejects short signing secret in production", func(t *testing.T) {
		cfg := base()
		cfg.AdminSecretKey = "short"
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects known weak registration key in production", func(t *testing.T) {
		cfg := base()
		cfg.AdminRegistrationKey = "password"
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("allows weak secrets outside production", func(t *testing.T) {
		cfg := base()
		cfg.AdminSecretKey = "dev"
		assert.NoError(t, cfg.Validate(false))
	})
}
