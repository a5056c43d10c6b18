// Package config loads the settings of the board and API servers from
// environment variables, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Shivanand-hulikatti/activities-board/internal/logging"
)

// Store backends understood by the API server.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// BoardConfig holds the settings of the board frontend.
type BoardConfig struct {
	Port         string
	APIURL       string
	APITimeout   time.Duration
	SessionTTL   time.Duration
	MaxSessions  int
	SecureCookie bool
	Log          logging.Config
}

// APIConfig holds the settings of the activities API.
type APIConfig struct {
	Port       string
	BoardURL   string
	Store      string
	SQLitePath string
	SeedFile   string
	Database   DatabaseConfig
	Log        logging.Config
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// LoadBoard reads the board configuration.
func LoadBoard() (*BoardConfig, error) {
	_ = godotenv.Load()

	apiTimeout, err := getDuration("API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	maxSessions, err := getInt("MAX_SESSIONS", 10000)
	if err != nil {
		return nil, err
	}
	secure, err := getBool("SECURE_COOKIE", false)
	if err != nil {
		return nil, err
	}

	return &BoardConfig{
		Port:         getEnv("PORT", "8080"),
		APIURL:       getEnv("API_URL", "http://localhost:8000"),
		APITimeout:   apiTimeout,
		SessionTTL:   sessionTTL,
		MaxSessions:  maxSessions,
		SecureCookie: secure,
		Log:          logConfig(),
	}, nil
}

// LoadAPI reads the API configuration.
func LoadAPI() (*APIConfig, error) {
	_ = godotenv.Load()

	cfg := &APIConfig{
		Port:       getEnv("PORT", "8000"),
		BoardURL:   getEnv("BOARD_URL", "http://localhost:8080/"),
		Store:      getEnv("STORE", StoreMemory),
		SQLitePath: getEnv("SQLITE_PATH", "activities.db"),
		SeedFile:   os.Getenv("SEED_FILE"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "activities"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Log: logConfig(),
	}

	switch cfg.Store {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE %q (want %s, %s or %s)", cfg.Store, StoreMemory, StorePostgres, StoreSQLite)
	}
	return cfg, nil
}

func logConfig() logging.Config {
	return logging.Config{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
