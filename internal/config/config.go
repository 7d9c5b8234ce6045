package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// MemoryPath selects a private in-memory database instead of a file.
const MemoryPath = ":memory:"

// Config holds all configuration options for sqld
type Config struct {
	Database    DatabaseConfig
	Import      ImportConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path           string        `env:"SQLD_DB"`
	Dir            string        `env:"SQLD_DB_DIR"`
	Filename       string        `env:"SQLD_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"SQLD_DB_QUERY_TIMEOUT"`
	ForeignKeys    bool          `env:"SQLD_DB_FOREIGN_KEYS"`
	DirPermissions uint32        `env:"SQLD_DB_DIR_PERMISSIONS"`
}

// ImportConfig holds spreadsheet import defaults
type ImportConfig struct {
	NormalizeColumns bool   `env:"SQLD_IMPORT_NORMALIZE_COLUMNS"`
	DefaultSheet     string `env:"SQLD_IMPORT_SHEET"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"SQLD_APP_TIMEOUT"`
	Verbose bool          `env:"SQLD_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            "data",
			Filename:       "sqld.db",
			QueryTimeout:   10 * time.Second,
			ForeignKeys:    false,
			DirPermissions: 0755,
		},
		Import: ImportConfig{
			NormalizeColumns: true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the location handed to the driver. An explicit
// Path wins over Dir/Filename.
func (c *Config) GetDatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// IsMemory reports whether the configured database lives in memory.
func (c *Config) IsMemory() bool {
	return c.GetDatabasePath() == MemoryPath
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if path := os.Getenv("SQLD_DB"); path != "" {
		c.Database.Path = path
	}
	if dir := os.Getenv("SQLD_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("SQLD_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("SQLD_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if fk := os.Getenv("SQLD_DB_FOREIGN_KEYS"); fk != "" {
		c.Database.ForeignKeys = ParseBoolWithFallback(fk, c.Database.ForeignKeys)
	}
	if perms := os.Getenv("SQLD_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Import configuration
	if normalize := os.Getenv("SQLD_IMPORT_NORMALIZE_COLUMNS"); normalize != "" {
		c.Import.NormalizeColumns = ParseBoolWithFallback(normalize, c.Import.NormalizeColumns)
	}
	if sheet := os.Getenv("SQLD_IMPORT_SHEET"); sheet != "" {
		c.Import.DefaultSheet = sheet
	}

	// Application configuration
	if timeout := os.Getenv("SQLD_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("SQLD_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
