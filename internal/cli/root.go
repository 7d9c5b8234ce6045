package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sqlite-crud/internal/config"
	"sqlite-crud/internal/logging"
	"sqlite-crud/internal/repository/sqlite"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
		logger: slog.Default(),
	}

	root.cmd = &cobra.Command{
		Use:   "sqld",
		Short: "Projects, tasks and spreadsheet imports on a single SQLite file",
		Long: `sqld manages a small SQLite database holding projects and tasks, and
bulk-loads spreadsheet (xlsx) or CSV files into tables.

EXAMPLES:
  sqld schema                                          # Create the projects and tasks tables
  sqld project add "Cool App" 2015-01-01 2015-01-30    # Insert a project
  sqld task add "Analyze" 1 1 1 2015-01-01 2015-01-02  # Insert a task
  sqld task list --priority 1                          # Tasks with priority 1
  sqld import projects Example/projects.xlsx           # Append spreadsheet rows
  sqld import --plan day1.yaml                         # Run an import plan
  sqld demo                                            # Run the end-to-end walkthrough

CONFIGURATION:
  Priority order: command-line flags > environment variables > defaults

    SQLD_DB                    Full database path or :memory: (overrides dir/filename)
    SQLD_DB_DIR                Database directory (default: data)
    SQLD_DB_FILENAME           Database filename (default: sqld.db)
    SQLD_DB_QUERY_TIMEOUT      Query timeout (default: 10s)
    SQLD_DB_FOREIGN_KEYS       Enforce foreign keys (default: false)
    SQLD_IMPORT_SHEET          Default worksheet for xlsx imports
    SQLD_IMPORT_NORMALIZE_COLUMNS  Replace spaces in headers with _ (default: true)
    SQLD_APP_TIMEOUT           Per-command timeout (default: 60s)
    SQLD_APP_VERBOSE           Log statements to stderr (default: false)
    SQLD_DEBUG                 Same as SQLD_APP_VERBOSE=true`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every
// per-command timeout.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db", "", "Database path or :memory: (overrides SQLD_DB)")
	flags.String("db-dir", "", "Database directory (overrides SQLD_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides SQLD_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides SQLD_DB_QUERY_TIMEOUT)")
	flags.Bool("foreign-keys", false, "Enforce foreign keys (overrides SQLD_DB_FOREIGN_KEYS)")
	flags.Bool("normalize-columns", true, "Normalize imported column names (overrides SQLD_IMPORT_NORMALIZE_COLUMNS)")
	flags.Duration("timeout", 0, "Per-command timeout (overrides SQLD_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Log every statement to stderr (overrides SQLD_APP_VERBOSE)")
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newSchemaCommand(),
		r.newProjectCommand(),
		r.newTaskCommand(),
		r.newJoinCommand(),
		r.newImportCommand(),
		r.newDumpCommand(),
		r.newEmployeesCommand(),
		r.newDemoCommand(),
	)
}

// getConfigFromFlags applies every flag the user set on top of the loaded
// configuration and sets up logging.
func (r *RootCommand) getConfigFromFlags(cmd *cobra.Command) error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db") {
		v, _ := flags.GetString("db")
		overrides.DBPath = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("foreign-keys") {
		v, _ := flags.GetBool("foreign-keys")
		overrides.DBForeignKeys = &v
	}
	if flags.Changed("normalize-columns") {
		v, _ := flags.GetBool("normalize-columns")
		overrides.NormalizeColumns = &v
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	config.Apply(r.config, overrides)
	if err := r.config.Validate(); err != nil {
		return err
	}

	r.logger = logging.New(cmd.ErrOrStderr(), r.config.Application.Verbose)
	return nil
}

// withRepository opens the configured database for the duration of fn.
func (r *RootCommand) withRepository(cmd *cobra.Command, fn func(ctx context.Context, repo *sqlite.SQLiteRepository) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
	defer cancel()

	repo, err := config.CreateRepository(ctx, r.config, r.logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	return fn(ctx, repo)
}

// withSchema is withRepository after ensuring projects and tasks exist.
func (r *RootCommand) withSchema(cmd *cobra.Command, fn func(ctx context.Context, repo *sqlite.SQLiteRepository) error) error {
	return r.withRepository(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
		if err := repo.EnsureDefaultSchema(ctx); err != nil {
			return err
		}
		return fn(ctx, repo)
	})
}

// queryContext bounds a single statement by the configured query timeout.
func (r *RootCommand) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.config.Database.QueryTimeout)
}
