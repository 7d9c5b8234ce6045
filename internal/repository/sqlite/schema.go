package sqlite

import (
	"context"
	"regexp"

	"sqlite-crud/internal/errors"
)

// SchemaProjects defines the projects table. Duplicate (name, begin_date,
// end_date) inserts are dropped by the constraint rather than rejected.
const SchemaProjects = `
CREATE TABLE IF NOT EXISTS projects (
	id integer PRIMARY KEY,
	name text NOT NULL,
	begin_date text,
	end_date text,
	UNIQUE (name, begin_date, end_date) ON CONFLICT IGNORE
)`

// SchemaTasks defines the tasks table.
const SchemaTasks = `
CREATE TABLE IF NOT EXISTS tasks (
	id integer PRIMARY KEY,
	name text NOT NULL,
	priority integer,
	status_id integer NOT NULL,
	project_id integer NOT NULL,
	begin_date text NOT NULL,
	end_date text NOT NULL,
	UNIQUE (name, begin_date, end_date) ON CONFLICT IGNORE,
	FOREIGN KEY (project_id) REFERENCES projects (id)
)`

// SchemaEmployees defines the standalone employees table.
const SchemaEmployees = `
CREATE TABLE IF NOT EXISTS employees (
	first text,
	last text,
	pay integer
)`

var createTableName = regexp.MustCompile(`(?i)create\s+table\s+(?:if\s+not\s+exists\s+)?["\x60\[]?([\w.]+)`)

// EnsureSchema executes a table definition. Definitions are expected to be
// idempotent (CREATE TABLE IF NOT EXISTS); on failure the schema is unchanged.
func (r *SQLiteRepository) EnsureSchema(ctx context.Context, definition string) error {
	table := "schema"
	if m := createTableName.FindStringSubmatch(definition); m != nil {
		table = m[1]
	}

	if _, err := r.db.ExecContext(ctx, definition); err != nil {
		return errors.NewSchemaError(table, err)
	}
	r.log.Debug("schema ensured", "table", table)
	return nil
}

// EnsureDefaultSchema creates the projects and tasks tables.
func (r *SQLiteRepository) EnsureDefaultSchema(ctx context.Context) error {
	for _, def := range []string{SchemaProjects, SchemaTasks} {
		if err := r.EnsureSchema(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

// EnsureEmployeeSchema creates the employees table.
func (r *SQLiteRepository) EnsureEmployeeSchema(ctx context.Context) error {
	return r.EnsureSchema(ctx, SchemaEmployees)
}
