package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("PLATFORM_BASE_URL", "https://api.savora.test")
		t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
		t.Setenv("GEO_BASE_URL", "https://geo.savora.test")
		t.Setenv("DELIVERY_FEE", "150")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "https://api.savora.test", cfg.PlatformBaseURL)
		assert.Equal(t, "sk_test_123", cfg.PaymentSecretKey)
		assert.Equal(t, float64(150), cfg.DeliveryFee)
	})

	t.Run("Delivery fee defaults when unset", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DELIVERY_FEE", "")

		cfg := LoadConfig()
		assert.Equal(t, float64(100), cfg.DeliveryFee)
	})

	t.Run("Delivery fee defaults when malformed", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DELIVERY_FEE", "free")

		cfg := LoadConfig()
		assert.Equal(t, float64(100), cfg.DeliveryFee)
	})
}
