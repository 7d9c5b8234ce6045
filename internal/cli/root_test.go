package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlite-crud/internal/config"
	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/repository/sqlite"
)

// setupTestDB returns a config pointing at a fresh database file.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	return cfg
}

// runCLI executes one command line against cfg and returns stdout.
func runCLI(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(cfg)

	var out, errOut bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&errOut)
	root.Command().SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func openDB(t *testing.T, cfg *config.Config) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.Open(context.Background(), cfg.GetDatabasePath())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	cfg := setupTestDB(t)
	dir := t.TempDir()

	_, err := runCLI(t, cfg, "--db", "", "--db-dir", dir, "--db-filename", "flags.db", "--timeout", "5s", "schema")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "flags.db"), cfg.GetDatabasePath())
	assert.Equal(t, "5s", cfg.Application.Timeout.String())
	_, err = os.Stat(filepath.Join(dir, "flags.db"))
	assert.NoError(t, err)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	cfg := setupTestDB(t)

	_, err := runCLI(t, cfg, "--timeout", "0s", "schema")
	require.Error(t, err)

	var cfgErr *config.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "application.timeout", cfgErr.Field)
}

func TestSchemaCommand(t *testing.T) {
	cfg := setupTestDB(t)

	out, err := runCLI(t, cfg, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema ready")

	// Running twice is harmless.
	_, err = runCLI(t, cfg, "schema")
	require.NoError(t, err)

	repo := openDB(t, cfg)
	for _, table := range []string{"projects", "tasks"} {
		ok, err := repo.TableExists(context.Background(), table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}
}

func TestProjectCommand(t *testing.T) {
	cfg := setupTestDB(t)

	out, err := runCLI(t, cfg, "project", "add", "App", "2020-01-01", "2020-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project 1")

	out, err = runCLI(t, cfg, "project", "add", "App", "2020-01-01", "2020-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	out, err = runCLI(t, cfg, "project", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "App")
	assert.Contains(t, out, "2020-01-02")

	out, err = runCLI(t, cfg, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "App")

	_, err = runCLI(t, cfg, "project", "show", "42")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = runCLI(t, cfg, "project", "show", "one")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTaskCommands(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	_, err := runCLI(t, cfg, "project", "add", "App", "2020-01-01", "2020-01-02")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "task", "add", "Design", "1", "1", "1", "2020-01-01", "2020-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task 1")

	_, err = runCLI(t, cfg, "task", "add", "Build", "2", "1", "1", "2020-01-03", "2020-01-04")
	require.NoError(t, err)

	t.Run("list by priority", func(t *testing.T) {
		out, err := runCLI(t, cfg, "task", "list", "--priority", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Design")
		assert.NotContains(t, out, "Build")
	})

	t.Run("update", func(t *testing.T) {
		out, err := runCLI(t, cfg, "task", "update", "2", "1", "2020-02-01", "2020-02-02")
		require.NoError(t, err)
		assert.Contains(t, out, "Updated 1 task(s)")

		out, err = runCLI(t, cfg, "task", "update", "99", "1", "2020-02-01", "2020-02-02")
		require.NoError(t, err)
		assert.Contains(t, out, "Updated 0 task(s)")

		repo := openDB(t, cfg)
		task, err := repo.GetTask(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1), task.Priority)
		assert.Equal(t, "2020-02-01", task.BeginDate)
	})

	t.Run("rejects bad numbers", func(t *testing.T) {
		_, err := runCLI(t, cfg, "task", "add", "Bad", "high", "1", "1", "2020-01-01", "2020-01-02")
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_INPUT", appErr.Code)
	})

	t.Run("delete requires exactly one target", func(t *testing.T) {
		_, err := runCLI(t, cfg, "task", "delete")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

		_, err = runCLI(t, cfg, "task", "delete", "1", "--all")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})

	t.Run("delete one then all", func(t *testing.T) {
		out, err := runCLI(t, cfg, "task", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted 1 task(s)")

		out, err = runCLI(t, cfg, "task", "delete", "--all")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted 1 task(s)")

		repo := openDB(t, cfg)
		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestJoinCommand(t *testing.T) {
	cfg := setupTestDB(t)

	_, err := runCLI(t, cfg, "project", "add", "App", "2020-01-01", "2020-01-02")
	require.NoError(t, err)
	_, err = runCLI(t, cfg, "task", "add", "Design", "1", "7", "1", "2020-01-01", "2020-01-02")
	require.NoError(t, err)

	out, err := runCLI(t, cfg, "join")
	require.NoError(t, err)
	assert.Contains(t, out, "App")
	assert.Contains(t, out, "Design")
}

func TestDemoCommand(t *testing.T) {
	cfg := setupTestDB(t)

	out, err := runCLI(t, cfg, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Query task by priority")
	assert.Contains(t, out, "Analyze the requirements of the app")

	repo := openDB(t, cfg)
	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Analyze the requirements of the app", tasks[0].Name)

	// A second run against the same file succeeds.
	_, err = runCLI(t, cfg, "demo")
	require.NoError(t, err)
}

func TestDemoCommand_ReusesExistingRows(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	_, err := runCLI(t, cfg, "project", "add", "Cool App with SQLite & Go", "2015-01-01", "2015-01-30")
	require.NoError(t, err)
	_, err = runCLI(t, cfg, "task", "add", "Analyze the requirements of the app", "1", "1", "1", "2015-01-01", "2015-01-02")
	require.NoError(t, err)
	_, err = runCLI(t, cfg, "task", "add", "Confirm with user about the top requirements", "1", "1", "1", "2015-01-03", "2015-01-05")
	require.NoError(t, err)

	_, err = runCLI(t, cfg, "demo")
	require.NoError(t, err)

	repo := openDB(t, cfg)
	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1, "the existing second task is updated then deleted")
	assert.Equal(t, "Analyze the requirements of the app", tasks[0].Name)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestDemoCommand_HelpPointsToImportPlans(t *testing.T) {
	cfg := setupTestDB(t)

	out, err := runCLI(t, cfg, "demo", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "sqld import --plan")
}

func TestEmployeesCommand(t *testing.T) {
	cfg := setupTestDB(t)

	out, err := runCLI(t, cfg, "employees")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee('John', 'Doe', 80000)")
	assert.Contains(t, out, "Jane.Doe@email.com")
	assert.Contains(t, out, "95000")

	// The configured database is never opened.
	_, err = os.Stat(cfg.GetDatabasePath())
	assert.True(t, os.IsNotExist(err))
}
