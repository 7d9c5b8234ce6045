// Package sqlite is the data access layer: one connection-scoped repository
// over a single-file (or in-memory) SQLite database holding projects, tasks,
// employees and tables created on demand by bulk appends.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/logging"

	_ "modernc.org/sqlite"
)

// Options configures a repository.
type Options struct {
	// Path is a file path, a "file:" URI or ":memory:".
	Path string

	// ForeignKeys turns on PRAGMA foreign_keys for the connection.
	ForeignKeys bool

	// Logger receives statement-level debug records; nothing is logged when nil.
	Logger *slog.Logger
}

// SQLiteRepository owns one database connection.
type SQLiteRepository struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// New opens the database described by opts and verifies it is reachable.
// On failure no repository is returned and nothing is left open.
func New(ctx context.Context, opts Options) (*SQLiteRepository, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.NewConnectionError(opts.Path, fmt.Errorf("database location must not be empty"))
	}

	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, errors.NewConnectionError(opts.Path, err)
	}
	// One connection: :memory: stays a single database and
	// last_insert_rowid belongs to the caller's own inserts.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewConnectionError(opts.Path, err)
	}

	if opts.ForeignKeys {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.NewConnectionError(opts.Path, err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Debug("database opened", "path", opts.Path, "foreign_keys", opts.ForeignKeys)

	return &SQLiteRepository{db: db, path: opts.Path, log: logger}, nil
}

// Open is New with default options.
func Open(ctx context.Context, path string) (*SQLiteRepository, error) {
	return New(ctx, Options{Path: path})
}

// Path returns the location the repository was opened with.
func (r *SQLiteRepository) Path() string {
	return r.path
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// InsertProject inserts a project and returns the connection's last insert
// ID. If an identical (name, begin_date, end_date) row already exists the
// insert is ignored, p.ID is left untouched and the returned ID refers to
// whatever was inserted last.
func (r *SQLiteRepository) InsertProject(ctx context.Context, p *Project) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, errors.NewValidationError("project name is required", nil).WithContext("field", "name")
	}

	query := `
	INSERT INTO projects (name, begin_date, end_date)
	VALUES (?, ?, ?)`

	id, affected, err := ExecuteInsert(ctx, r.db, "insert project", query, p.Name, p.BeginDate, p.EndDate)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		p.ID = id
	}
	r.log.Debug("statement", "op", "insert project", "id", id, "rows", affected)
	return id, nil
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT id, name, begin_date, end_date FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
}

// ListProjects retrieves all projects ordered by ID.
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	query := `SELECT id, name, begin_date, end_date FROM projects ORDER BY id`
	return Collect(QuerySeq(ctx, r.db, "select projects", query, ScanProject))
}

// InsertTask inserts a task; same contract as InsertProject.
func (r *SQLiteRepository) InsertTask(ctx context.Context, t *Task) (int64, error) {
	if strings.TrimSpace(t.Name) == "" {
		return 0, errors.NewValidationError("task name is required", nil).WithContext("field", "name")
	}

	query := `
	INSERT INTO tasks (name, priority, status_id, project_id, begin_date, end_date)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, affected, err := ExecuteInsert(ctx, r.db, "insert task", query,
		t.Name, t.Priority, t.StatusID, t.ProjectID, t.BeginDate, t.EndDate)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		t.ID = id
	}
	r.log.Debug("statement", "op", "insert task", "id", id, "rows", affected)
	return id, nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `
	SELECT id, name, priority, status_id, project_id, begin_date, end_date
	FROM tasks
	WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// UpdateTask sets priority, begin_date and end_date of one task and returns
// the number of rows changed (0 when the ID does not exist).
func (r *SQLiteRepository) UpdateTask(ctx context.Context, u TaskUpdate) (int64, error) {
	query := `
	UPDATE tasks
	SET priority = ?, begin_date = ?, end_date = ?
	WHERE id = ?`

	n, err := ExecuteWithRowsAffected(ctx, r.db, "update task", query, u.Priority, u.BeginDate, u.EndDate, u.ID)
	if err != nil {
		return 0, err
	}
	r.log.Debug("statement", "op", "update task", "id", u.ID, "rows", n)
	return n, nil
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) (int64, error) {
	n, err := ExecuteWithRowsAffected(ctx, r.db, "delete task", `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	r.log.Debug("statement", "op", "delete task", "id", id, "rows", n)
	return n, nil
}

// DeleteAllTasks empties the tasks table.
func (r *SQLiteRepository) DeleteAllTasks(ctx context.Context) (int64, error) {
	n, err := ExecuteWithRowsAffected(ctx, r.db, "delete all tasks", `DELETE FROM tasks`)
	if err != nil {
		return 0, err
	}
	r.log.Debug("statement", "op", "delete all tasks", "rows", n)
	return n, nil
}

const selectTasks = `
	SELECT id, name, priority, status_id, project_id, begin_date, end_date
	FROM tasks`

// Tasks yields every task lazily.
func (r *SQLiteRepository) Tasks(ctx context.Context) iter.Seq2[*Task, error] {
	return QuerySeq(ctx, r.db, "select tasks", selectTasks+" ORDER BY id", ScanTask)
}

// ListTasks retrieves all tasks
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	return Collect(r.Tasks(ctx))
}

// TasksByPriority yields tasks whose priority equals priority.
func (r *SQLiteRepository) TasksByPriority(ctx context.Context, priority int64) iter.Seq2[*Task, error] {
	return QuerySeq(ctx, r.db, "select tasks by priority", selectTasks+" WHERE priority = ? ORDER BY id", ScanTask, priority)
}

// ListTasksByPriority collects TasksByPriority.
func (r *SQLiteRepository) ListTasksByPriority(ctx context.Context, priority int64) ([]*Task, error) {
	return Collect(r.TasksByPriority(ctx, priority))
}

// ProjectTasks yields the inner join of projects and tasks.
//
// The join matches projects.id to tasks.id, not to tasks.project_id, so a
// task appears next to the project that happens to share its ID.
func (r *SQLiteRepository) ProjectTasks(ctx context.Context) iter.Seq2[*ProjectTask, error] {
	query := `
	SELECT
		projects.name,
		tasks.name,
		projects.id AS id_projects,
		tasks.id AS id_tasks,
		status_id
	FROM
		projects
		INNER JOIN tasks ON tasks.id = projects.id
	ORDER BY projects.id`
	return QuerySeq(ctx, r.db, "join projects tasks", query, ScanProjectTask)
}

// ListProjectTasks collects ProjectTasks.
func (r *SQLiteRepository) ListProjectTasks(ctx context.Context) ([]*ProjectTask, error) {
	return Collect(r.ProjectTasks(ctx))
}
