package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sqlite-crud/internal/repository/sqlite"
)

// CreateRepository opens the configured database, creating its directory
// first when it is a plain file path.
func CreateRepository(ctx context.Context, config *Config, logger *slog.Logger) (*sqlite.SQLiteRepository, error) {
	dbPath := config.GetDatabasePath()

	if !config.IsMemory() && !strings.HasPrefix(dbPath, "file:") {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	repo, err := sqlite.New(ctx, sqlite.Options{
		Path:        dbPath,
		ForeignKeys: config.Database.ForeignKeys,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}
