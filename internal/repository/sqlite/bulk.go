package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/sheet"
)

// AppendMode controls what BulkAppend does with an existing table.
type AppendMode int

const (
	// ModeAppend keeps existing rows and table definition.
	ModeAppend AppendMode = iota
	// ModeReplace drops the table and recreates it from the data.
	ModeReplace
)

// ParseAppendMode maps "append"/"replace" (case-insensitive) to a mode.
func ParseAppendMode(s string) (AppendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "append":
		return ModeAppend, nil
	case "replace":
		return ModeReplace, nil
	default:
		return ModeAppend, errors.NewInvalidInputError("mode", s, "must be append or replace")
	}
}

// AppendOptions tunes BulkAppend.
type AppendOptions struct {
	Mode AppendMode
}

// BulkAppend writes every row of data into table inside one transaction.
// The table is created from data's column names (with inferred affinities)
// when it does not exist. The return value counts rows actually written, so
// rows dropped by an ON CONFLICT IGNORE constraint are not included.
func (r *SQLiteRepository) BulkAppend(ctx context.Context, table string, data sheet.Table, opts AppendOptions) (int64, error) {
	if strings.TrimSpace(table) == "" {
		return 0, errors.NewInvalidInputError("table", table, "table name must not be empty")
	}
	if len(data.Columns) == 0 {
		return 0, errors.NewInvalidInputError("columns", table, "source has no columns")
	}

	createSQL, err := BuildCreateTableSQL(table, InferColumns(data.Columns, data.Rows))
	if err != nil {
		return 0, errors.NewSchemaError(table, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewStatementError("begin bulk append", err)
	}
	defer tx.Rollback()

	if opts.Mode == ModeReplace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
			return 0, errors.NewSchemaError(table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return 0, errors.NewSchemaError(table, err)
	}

	written, err := copyRows(ctx, tx, table, data)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewStatementError("commit bulk append", err)
	}
	r.log.Debug("bulk append", "table", table, "rows", data.Len(), "written", written, "replace", opts.Mode == ModeReplace)
	return written, nil
}

func copyRows(ctx context.Context, tx *sql.Tx, table string, data sheet.Table) (int64, error) {
	if data.Len() == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, BuildInsertSQL(table, data.Columns))
	if err != nil {
		return 0, errors.NewStatementError("prepare insert into "+table, err)
	}
	defer stmt.Close()

	var written int64
	args := make([]any, len(data.Columns))
	for i, row := range data.Rows {
		if len(row) != len(data.Columns) {
			return 0, errors.NewInvalidInputError("rows", i, fmt.Sprintf("row %d has %d cells, want %d", i, len(row), len(data.Columns)))
		}
		for j, v := range row {
			args[j] = bindValue(v)
		}
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, errors.NewStatementError(fmt.Sprintf("insert row %d into %s", i, table), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, errors.NewStatementError("rows affected", err)
		}
		written += n
	}
	return written, nil
}

// ReadTable returns every row of table with its column names.
func (r *SQLiteRepository) ReadTable(ctx context.Context, table string) (sheet.Table, error) {
	return r.queryTable(ctx, "read "+table, "SELECT * FROM "+quoteIdent(table))
}

// RowsAfterID returns rows of table whose column compares greater than
// after.
func (r *SQLiteRepository) RowsAfterID(ctx context.Context, table, column string, after any) (sheet.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s > ?", quoteIdent(table), quoteIdent(column))
	return r.queryTable(ctx, "read "+table, query, after)
}

func (r *SQLiteRepository) queryTable(ctx context.Context, operation, query string, args ...any) (sheet.Table, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return sheet.Table{}, errors.NewStatementError(operation, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return sheet.Table{}, errors.NewStatementError(operation, err)
	}

	out := sheet.Table{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return sheet.Table{}, errors.NewStatementError("scan "+operation, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out.Rows = append(out.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return sheet.Table{}, errors.NewStatementError(operation, err)
	}
	return out, nil
}

// CountRows returns the number of rows in table.
func (r *SQLiteRepository) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM "+quoteIdent(table)).Scan(&n); err != nil {
		return 0, errors.NewStatementError("count "+table, err)
	}
	return n, nil
}

// TableExists reports whether table is defined in the main schema.
func (r *SQLiteRepository) TableExists(ctx context.Context, table string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, errors.NewStatementError("lookup table "+table, err)
	}
	return n > 0, nil
}
