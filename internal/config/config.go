package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CursorBackendDatabase = "database"
	CursorBackendRedis    = "redis"
	CursorBackendMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Bot      BotConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type BotConfig struct {
	WebhookSecret  string
	WorkerPoolSize int
	CursorBackend  string // "database", "redis" or "memory"
	CursorTTLHours int
	DefaultLocale  string
	AuditTopic     string
	StaffIDs       []int64
}

type AuthConfig struct {
	JWTSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "bot.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Bot: BotConfig{
			WebhookSecret:  getEnv("BOT_WEBHOOK_SECRET", ""),
			WorkerPoolSize: getEnvAsInt("WORKER_POOL_SIZE", 16),
			CursorBackend:  getEnv("CURSOR_BACKEND", CursorBackendDatabase),
			CursorTTLHours: getEnvAsInt("CURSOR_TTL_HOURS", 24),
			DefaultLocale:  getEnv("DEFAULT_LOCALE", "en"),
			AuditTopic:     getEnv("AUDIT_TOPIC", "bot_actions"),
			StaffIDs:       getEnvAsInt64List("BOT_STAFF_IDS"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Connection == "" {
		errs = append(errs, errors.New("DB_CONNECTION_STRING is required"))
	}
	switch c.Bot.CursorBackend {
	case CursorBackendDatabase, CursorBackendRedis, CursorBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("CURSOR_BACKEND %q is not one of database, redis, memory", c.Bot.CursorBackend))
	}
	if c.Bot.WorkerPoolSize <= 0 {
		errs = append(errs, fmt.Errorf("WORKER_POOL_SIZE must be positive, got %d", c.Bot.WorkerPoolSize))
	}
	if c.Bot.CursorTTLHours <= 0 {
		errs = append(errs, fmt.Errorf("CURSOR_TTL_HOURS must be positive, got %d", c.Bot.CursorTTLHours))
	}
	if c.App.Environment == "production" {
		if c.Bot.WebhookSecret == "" {
			errs = append(errs, errors.New("BOT_WEBHOOK_SECRET is required in production"))
		}
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		}
	}
	return errors.Join(errs...)
}

// IsStaff reports whether id is listed in BOT_STAFF_IDS.
func (b BotConfig) IsStaff(id int64) bool {
	for _, s := range b.StaffIDs {
		if s == id {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64List(key string) []int64 {
	var out []int64
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if v, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, v)
		} else {
			log.Printf("Warn: ignoring invalid %s entry %q", key, part)
		}
	}
	return out
}
