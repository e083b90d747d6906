package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"catering-api/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	DBDriver       string
	DBDSN          string
	JWTSecret      []byte
	JWTExpiry      time.Duration
	OrderExpiresIn time.Duration
	BaseURL        string
	PasswordHasher string
	RedisURL       string
	RedisAddr      string
	MenuCacheTTL   time.Duration
	AMQPURL        string
	OriginURL      string
}

// AppConfig is populated by Load. Tests may assign it directly.
var AppConfig = Default()

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		AppEnv:         "development",
		Port:           "8080",
		DBDriver:       "sqlite",
		DBDSN:          "catering.db?_pragma=foreign_keys(1)",
		JWTSecret:      []byte("catering_marketplace_secret"),
		JWTExpiry:      100 * time.Hour,
		OrderExpiresIn: 5 * time.Minute,
		BaseURL:        "http://localhost:8080",
		PasswordHasher: "bcrypt",
		RedisAddr:      "",
		MenuCacheTTL:   5 * time.Minute,
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Default.Warn("config_load", "", ".env file not found, using system environment variables")
	}

	def := Default()
	AppConfig = &Config{
		AppEnv:         getEnv("APP_ENV", def.AppEnv),
		Port:           getEnv("PORT", def.Port),
		DBDriver:       getEnv("DB_DRIVER", def.DBDriver),
		DBDSN:          getEnv("DB_DSN", def.DBDSN),
		JWTSecret:      []byte(getEnv("JWT_SECRET", string(def.JWTSecret))),
		JWTExpiry:      getDuration("JWT_EXPIRY", def.JWTExpiry),
		OrderExpiresIn: getMinutes("ORDER_EXPIRES_IN", def.OrderExpiresIn),
		BaseURL:        getEnv("BASE_URL", def.BaseURL),
		PasswordHasher: getEnv("PASSWORD_HASHER", def.PasswordHasher),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", def.RedisAddr),
		MenuCacheTTL:   getDuration("MENU_CACHE_TTL", def.MenuCacheTTL),
		AMQPURL:        getEnv("AMQP_URL", ""),
		OriginURL:      getEnv("ORIGIN_URL", ""),
	}

	logger.Default.Info("config_load", "", "configuration loaded",
		slog.String("env", AppConfig.AppEnv),
		slog.String("port", AppConfig.Port),
		slog.String("db_driver", AppConfig.DBDriver),
	)
	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logger.Default.Warn("config_load", "", "invalid duration, using default",
			slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return d
}

// getMinutes reads a whole number of minutes.
func getMinutes(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Default.Warn("config_load", "", "invalid minutes, using default",
			slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return time.Duration(n) * time.Minute
}
