package sqlite

import (
	"context"
	"database/sql"
	"iter"

	"sqlite-crud/internal/errors"
)

// Execer is the subset of *sql.DB and *sql.Tx used for writes.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ExecuteInsert runs an INSERT and returns the connection's last insert ID
// together with the number of rows written. When a conflict clause drops
// the row, affected is 0 and id still reports the previous insert.
func ExecuteInsert(ctx context.Context, db Execer, operation string, query string, args ...any) (id int64, affected int64, err error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, 0, errors.NewStatementError(operation, err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, 0, errors.NewStatementError(operation+": last insert id", err)
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return 0, 0, errors.NewStatementError(operation+": rows affected", err)
	}
	return id, affected, nil
}

// ExecuteWithRowsAffected runs a statement and returns how many rows it
// changed. Zero is not an error.
func ExecuteWithRowsAffected(ctx context.Context, db Execer, operation string, query string, args ...any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewStatementError(operation, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStatementError(operation+": rows affected", err)
	}
	return rows, nil
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...any) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, errors.NewStatementError("scan "+entityType, err)
	}
	return result, nil
}

// QuerySeq runs a query lazily. The statement executes when iteration starts
// and rows are released when it stops; ranging again re-runs the query.
// The single connection is held while ranging.
func QuerySeq[T any](ctx context.Context, db *sql.DB, operation string, query string, scanFunc func(Scanner) (*T, error), args ...any) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, errors.NewStatementError(operation, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanFunc(rows)
			if err != nil {
				yield(nil, errors.NewStatementError("scan "+operation, err))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, errors.NewStatementError(operation, err))
		}
	}
}

// Collect drains a sequence into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[*T, error]) ([]*T, error) {
	items := []*T{}
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
