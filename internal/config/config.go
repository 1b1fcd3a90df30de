package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rps_game/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	AppPort     string
	AppVersion  string
	Storage     string
	DatabaseURL string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RankingsCacheTTL time.Duration

	ReminderEnabled  bool
	ReminderInterval time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	LogLevel string
	LogJSON  bool
}

// SMTPEnabled reports whether reminder emails are actually delivered
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		AppVersion:       getEnv("APP_VERSION", "dev"),
		Storage:          strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getInt("REDIS_DB", 0),
		RankingsCacheTTL: time.Duration(getInt("RANKINGS_CACHE_TTL_SECONDS", 60)) * time.Second,
		ReminderEnabled:  getEnv("REMINDER_ENABLED", "true") == "true",
		ReminderInterval: time.Duration(getInt("REMINDER_INTERVAL_MINUTES", 60)) * time.Minute,
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		MailFrom:         getEnv("MAIL_FROM", "noreply@rps-game.local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogJSON:          os.Getenv("LOG_JSON") == "true",
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			logger.Fatal("DATABASE_URL is not set")
		}
	case StorageMemory:
	default:
		logger.Fatal("unknown STORAGE", "storage", cfg.Storage)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt falls back to def for missing, malformed or negative values
func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}
