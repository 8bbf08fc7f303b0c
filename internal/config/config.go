package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Storage StorageConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeSQLite     DBType = "sqlite"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StorageMode selects which backend the store facade talks to.
type StorageMode string

const (
	// StorageModeSQL routes operations to the relational store and falls back
	// to the local store per call.
	StorageModeSQL StorageMode = "sql"
	// StorageModeLocal never touches the relational store.
	StorageModeLocal StorageMode = "local"
)

// LocalBackend selects the key-value storage behind the local store.
type LocalBackend string

const (
	LocalBackendFile   LocalBackend = "file"
	LocalBackendMemory LocalBackend = "memory"
)

// StorageConfig holds settings for the store facade and the local store
type StorageConfig struct {
	Mode         StorageMode
	LocalBackend LocalBackend
	LocalPath    string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	switch c.Type {
	case DBTypeMemory:
		// SQLite in-memory database
		if c.Name != "" && c.Name != "weather" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	case DBTypeSQLite:
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.Path)
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsSQLite returns true for both the file-backed and in-memory SQLite types
func (c DBConfig) IsSQLite() bool {
	return c.Type == DBTypeSQLite || c.Type == DBTypeMemory
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "sqlite"))
	switch dbType {
	case DBTypePostgreSQL, DBTypeSQLite, DBTypeMemory:
	default:
		dbType = DBTypeSQLite
	}

	mode := StorageMode(getEnv("STORAGE_MODE", "sql"))
	if mode != StorageModeSQL && mode != StorageModeLocal {
		return nil, fmt.Errorf("unknown STORAGE_MODE %q", mode)
	}

	backend := LocalBackend(getEnv("LOCAL_STORE_BACKEND", "file"))
	if backend != LocalBackendFile && backend != LocalBackendMemory {
		backend = LocalBackendFile
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Path:     getEnv("DB_PATH", "data/weather.sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "weather"),
			Password: getEnv("DB_PASSWORD", "weather_password"),
			Name:     getEnv("DB_NAME", "weather"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: strconv.Itoa(getEnvAsInt("APP_PORT", 8080)),
		},
		Storage: StorageConfig{
			Mode:         mode,
			LocalBackend: backend,
			LocalPath:    getEnv("LOCAL_STORE_PATH", "data/local_storage"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
