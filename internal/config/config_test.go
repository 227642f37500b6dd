package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("API_BASE_URL", "http://backend.local")
		t.Setenv("API_TIMEOUT", "4")
		t.Setenv("API_MAX_RETRIES", "5")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("CART_TTL_HOURS", "24")
		t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec")
		t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example")
		t.Setenv("CLEAR_CART_ON", "confirmed")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "http://backend.local", cfg.APIBaseURL)
		assert.Equal(t, 4*time.Second, cfg.APITimeout)
		assert.Equal(t, 5, cfg.APIMaxRetries)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 24*time.Hour, cfg.CartTTL)
		assert.Equal(t, "whsec", cfg.PaymentWebhookSecret)
		assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSOrigins)
		assert.Equal(t, "confirmed", cfg.ClearCartOn)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://backend.local")
		t.Setenv("APP_ENV", "")
		t.Setenv("APP_PORT", "")
		t.Setenv("API_TIMEOUT", "not-a-number")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("CLEAR_CART_ON", "")

		cfg := LoadConfig()

		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, 10*time.Second, cfg.APITimeout)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
		assert.Equal(t, "initialized", cfg.ClearCartOn)
	})
}
