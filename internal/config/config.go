package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig holds the optional history database configuration
type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config holds all configuration for the application
type Config struct {
	APIBaseURL           string
	ListenAddr           string
	RequestTimeout       time.Duration
	DownloadDir          string
	DefaultStyle         string
	HistoryRetentionDays int
	DB                   DBConfig
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; the defaults below cover local development
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL:   os.Getenv("WALLPAPER_API_BASE_URL"),
		ListenAddr:   os.Getenv("LISTEN_ADDR"),
		DownloadDir:  os.Getenv("DOWNLOAD_DIR"),
		DefaultStyle: os.Getenv("DEFAULT_STYLE"),
	}

	if config.APIBaseURL == "" {
		config.APIBaseURL = "http://localhost:8001" // local backend default
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":3000"
	}
	if config.DownloadDir == "" {
		config.DownloadDir = "./downloads"
	}

	if timeout, err := strconv.Atoi(os.Getenv("REQUEST_TIMEOUT")); err == nil {
		config.RequestTimeout = time.Duration(timeout) * time.Second
	} else {
		config.RequestTimeout = 30 * time.Second // default value
	}

	if days, err := strconv.Atoi(os.Getenv("HISTORY_RETENTION_DAYS")); err == nil {
		config.HistoryRetentionDays = days
	} else {
		config.HistoryRetentionDays = 30 // default value
	}

	// Load database configuration
	dbConfig := DBConfig{
		Host:     os.Getenv("DB_HOST"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSL_MODE"),
	}

	// Parse database port
	if port, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil {
		dbConfig.Port = port
	} else {
		dbConfig.Port = 5432 // default PostgreSQL port
	}

	// Parse connection pool settings
	if maxOpenConns, err := strconv.Atoi(os.Getenv("DB_MAX_OPEN_CONNS")); err == nil {
		dbConfig.MaxOpenConns = maxOpenConns
	} else {
		dbConfig.MaxOpenConns = 25 // default value
	}

	if maxIdleConns, err := strconv.Atoi(os.Getenv("DB_MAX_IDLE_CONNS")); err == nil {
		dbConfig.MaxIdleConns = maxIdleConns
	} else {
		dbConfig.MaxIdleConns = 25 // default value
	}

	if connMaxLifetime, err := strconv.Atoi(os.Getenv("DB_CONN_MAX_LIFETIME")); err == nil {
		dbConfig.ConnMaxLifetime = time.Duration(connMaxLifetime) * time.Second
	} else {
		dbConfig.ConnMaxLifetime = 5 * time.Minute // default value
	}

	config.DB = dbConfig

	// The history database is optional; validate it only when enabled
	if config.HistoryEnabled() {
		if config.DB.User == "" {
			return nil, fmt.Errorf("DB_USER is required when DB_HOST is set")
		}
		if config.DB.Database == "" {
			return nil, fmt.Errorf("DB_NAME is required when DB_HOST is set")
		}
	}

	return config, nil
}

// HistoryEnabled reports whether the optional generation history is configured
func (c *Config) HistoryEnabled() bool {
	return c.DB.Host != ""
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}
