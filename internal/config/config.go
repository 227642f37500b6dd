package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	AppPort       string
	PublicBaseURL string

	APIBaseURL       string
	APITimeout       time.Duration
	APIMaxRetries    int
	APIRetryInterval time.Duration

	JWTSecret         string
	InternalSecretKey string
	CORSOrigins       []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	PaymentWebhookSecret string

	// Pricing overrides, parsed as decimals by the pricing package.
	FreeShippingThreshold string
	FlatShippingFee       string
	TaxRate               string

	// ClearCartOn is "initialized" or "confirmed".
	ClearCartOn string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnvOrDefault("APP_ENV", "development"),
		AppPort:       getEnvOrDefault("APP_PORT", "8080"),
		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"),

		APIBaseURL:       os.Getenv("API_BASE_URL"),
		APITimeout:       getDurationEnv("API_TIMEOUT", 10, time.Second),
		APIMaxRetries:    getIntEnv("API_MAX_RETRIES", 3),
		APIRetryInterval: getDurationEnv("API_RETRY_INTERVAL_MS", 200, time.Millisecond),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
		CORSOrigins:       getListEnv("CORS_ORIGINS", []string{"http://localhost:3000"}),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CartTTL:       getDurationEnv("CART_TTL_HOURS", 72, time.Hour),

		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),

		FreeShippingThreshold: os.Getenv("FREE_SHIPPING_THRESHOLD"),
		FlatShippingFee:       os.Getenv("FLAT_SHIPPING_FEE"),
		TaxRate:               os.Getenv("TAX_RATE"),

		ClearCartOn: getEnvOrDefault("CLEAR_CART_ON", "initialized"),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is not set")
	}

	return cfg
}

// IsProduction reports whether the service runs with production logging and gin release mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
