package config

import (
	"os"
	"strconv"
	"time"

	"tierlist_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Redis rate limiter (optional; limiter is fail-open without it)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Default super-admin seeded when the admins table is empty
	DefaultAdminUser     string
	DefaultAdminPassword string

	// Webhook dispatch windows
	WebhookDebounce time.Duration
	WebhookCooldown time.Duration

	LogLevel      string
	LogJSON       bool
	AllowedOrigin string
}

// Load reads configuration from the environment. JWT_SECRET is required.
// DATABASE_URL may be empty: the server then runs on the volatile in-memory
// store, which is acceptable only for non-critical deployments.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	adminUser := os.Getenv("DEFAULT_ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}
	adminPass := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "changeme"
		logger.Warn("DEFAULT_ADMIN_PASSWORD not set, using built-in default")
	}

	debounce := 2 * time.Second
	if v := os.Getenv("WEBHOOK_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			debounce = time.Duration(n) * time.Millisecond
		}
	}

	cooldown := 5 * time.Second
	if v := os.Getenv("WEBHOOK_COOLDOWN_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cooldown = time.Duration(n) * time.Millisecond
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:              port,
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            jwtSecret,
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		DefaultAdminUser:     adminUser,
		DefaultAdminPassword: adminPass,
		WebhookDebounce:      debounce,
		WebhookCooldown:      cooldown,
		LogLevel:             logLevel,
		LogJSON:              os.Getenv("LOG_JSON") == "true",
		AllowedOrigin:        os.Getenv("ALLOWED_ORIGIN"),
	}
}
