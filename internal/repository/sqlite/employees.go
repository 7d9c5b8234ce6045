package sqlite

import (
	"context"

	"sqlite-crud/internal/errors"
)

// InsertEmployee adds an employee row. Duplicates are allowed.
func (r *SQLiteRepository) InsertEmployee(ctx context.Context, e Employee) error {
	if e.First == "" || e.Last == "" {
		return errors.NewValidationError("employee first and last name are required", nil)
	}
	_, _, err := ExecuteInsert(ctx, r.db, "insert employee",
		`INSERT INTO employees (first, last, pay) VALUES (?, ?, ?)`, e.First, e.Last, e.Pay)
	if err != nil {
		return err
	}
	r.log.Debug("statement", "op", "insert employee", "employee", e.FullName())
	return nil
}

// EmployeesByLastName returns employees with the given last name in
// insertion order.
func (r *SQLiteRepository) EmployeesByLastName(ctx context.Context, last string) ([]*Employee, error) {
	query := `SELECT first, last, pay FROM employees WHERE last = ? ORDER BY rowid`
	return Collect(QuerySeq(ctx, r.db, "select employees", query, ScanEmployee, last))
}

// UpdatePay sets pay for every row matching e's first and last name.
func (r *SQLiteRepository) UpdatePay(ctx context.Context, e Employee, pay int64) (int64, error) {
	query := `
	UPDATE employees SET pay = ?
	WHERE first = ? AND last = ?`
	return ExecuteWithRowsAffected(ctx, r.db, "update employee pay", query, pay, e.First, e.Last)
}

// RemoveEmployee deletes every row matching e's first and last name.
func (r *SQLiteRepository) RemoveEmployee(ctx context.Context, e Employee) (int64, error) {
	return ExecuteWithRowsAffected(ctx, r.db, "remove employee",
		`DELETE FROM employees WHERE first = ? AND last = ?`, e.First, e.Last)
}
