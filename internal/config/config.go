package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"books-api/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// AuthConfig bật bearer token cho các write route (POST/PUT/DELETE)
type AuthConfig struct {
	Enabled           bool
	JWTSecret         string
	AccessTokenExpiry int // minutes
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	redisEnabled, err := getEnvBool("REDIS_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	authEnabled, err := getEnvBool("AUTH_ENABLED", false)
	if err != nil {
		return nil, err
	}
	accessExpiry, err := getEnvInt("JWT_ACCESS_EXPIRY", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Books API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: dbCfg,
		Redis: RedisConfig{
			Enabled:  redisEnabled,
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		Auth: AuthConfig{
			Enabled:           authEnabled,
			JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: accessExpiry,
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	// secret mặc định là public, bật auth với nó cũng như không bật
	if c.Auth.Enabled && !c.Auth.HasSecret() {
		return fmt.Errorf("JWT_SECRET must be set when AUTH_ENABLED=true")
	}
	if c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Database.MaxRetries < 1 {
		return fmt.Errorf("DB_MAX_RETRIES must be at least 1")
	}

	// Production environment phải có secrets thật
	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return nil
}

// HasSecret false khi JWT_SECRET rỗng hoặc vẫn là giá trị mặc định
func (a AuthConfig) HasSecret() bool {
	return a.JWTSecret != "" && a.JWTSecret != defaultJWTSecret
}

// AccessTokenTTL trả về thời hạn token dạng time.Duration
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpiry) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
