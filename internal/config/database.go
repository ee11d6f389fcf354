package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/database"

	"github.com/sirupsen/logrus"
)

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
	// MigrationsPath is empty to use the migrations embedded in the binary
	MigrationsPath  string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultDatabaseConfig returns default database configuration
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Path:            "./data/caketea.db",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables
func LoadDatabaseConfigFromEnv() *DatabaseConfig {
	config := DefaultDatabaseConfig()

	config.Path = GetEnv("DB_PATH", config.Path)
	config.MigrationsPath = GetEnv("DB_MIGRATIONS_PATH", config.MigrationsPath)
	config.MaxOpenConns = GetEnvAsInt("DB_MAX_OPEN_CONNS", config.MaxOpenConns)
	config.MaxIdleConns = GetEnvAsInt("DB_MAX_IDLE_CONNS", config.MaxIdleConns)

	if lifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); lifetime != "" {
		if val, err := time.ParseDuration(lifetime); err == nil {
			config.ConnMaxLifetime = val
		}
	}

	return config
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		return fmt.Errorf("max idle connections must be at least 1")
	}
	if c.MigrationsPath != "" {
		if _, err := os.Stat(c.MigrationsPath); os.IsNotExist(err) {
			return fmt.Errorf("migrations directory does not exist: %s", c.MigrationsPath)
		}
	}
	return nil
}

// ToConnectionConfig converts DatabaseConfig to database.ConnectionConfig
func (c *DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	return &database.ConnectionConfig{
		DatabasePath:    c.Path,
		MigrationsPath:  c.MigrationsPath,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		Logger:          logger,
	}
}

// AbsolutePath returns the absolute database file path
func (c *DatabaseConfig) AbsolutePath() (string, error) {
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute database path: %w", err)
	}
	return path, nil
}
