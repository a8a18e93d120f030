// Package config provides configuration management for the minblog application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found during loading is gathered
// and reported at once instead of failing on the first missing variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string // Port for the HTTP server
	// RequestTimeout bounds how long a single request may run, including its
	// database round-trips. Requests exceeding it are cancelled and answered
	// with a gateway timeout by the router middleware.
	RequestTimeout time.Duration
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *PoolConfig
	Server *ServerConfig
}

// getRequiredEnv reads a required environment variable, collecting an error
// into errs when it is absent.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// The default is used if the variable is unset; a parse failure is collected
// as an error and the default returned.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("15s", "1m30s", ...). Parse failures are collected.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize validates a pool size, clamping it between 1 and 100 and
// collecting an error when the requested value falls outside that range.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 1 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 1, clamping to 1", varName, size))
		return 1
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database configuration.
	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Server configuration.
	serverConfig := &ServerConfig{
		Port:           getOptionalEnv("PORT", "8080"),
		RequestTimeout: getOptionalEnvDuration("REQUEST_TIMEOUT", 15*time.Second, &errs),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Server: serverConfig,
	}, nil
}
