package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (see Apply)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBPath         *string
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBForeignKeys  *bool

	NormalizeColumns *bool
	DefaultSheet     *string

	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every non-nil override into config.
func Apply(config *Config, overrides *ConfigOverrides) {
	if overrides.DBPath != nil {
		config.Database.Path = *overrides.DBPath
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBForeignKeys != nil {
		config.Database.ForeignKeys = *overrides.DBForeignKeys
	}

	if overrides.NormalizeColumns != nil {
		config.Import.NormalizeColumns = *overrides.NormalizeColumns
	}
	if overrides.DefaultSheet != nil {
		config.Import.DefaultSheet = *overrides.DefaultSheet
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
