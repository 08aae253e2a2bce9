package config

import (
	"time"

	"books-api/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc config từ environment variables và trả về DBConfig
func LoadDatabaseConfig() (*database.DBConfig, error) {
	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	maxConns, err := getEnvInt("DB_MAX_CONNECTIONS", 25)
	if err != nil {
		return nil, err
	}

	minConns, err := getEnvInt("DB_MIN_CONNECTIONS", 2)
	if err != nil {
		return nil, err
	}

	maxRetries, err := getEnvInt("DB_MAX_RETRIES", 5)
	if err != nil {
		return nil, err
	}

	// Parse durations
	maxConnLifetime, err := getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	maxConnIdleTime, err := getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute)
	if err != nil {
		return nil, err
	}

	healthCheckPeriod, err := getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute)
	if err != nil {
		return nil, err
	}

	retryDelay, err := getEnvDuration("DB_RETRY_DELAY", time.Second)
	if err != nil {
		return nil, err
	}

	connectTimeout, err := getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	queryTimeout, err := getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              port,
		Username:          getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "books"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(maxConns),
		MinConns:          int32(minConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
		QueryTimeout:      queryTimeout,
	}, nil
}
