package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// ScanProject scans id, name, begin_date, end_date.
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var begin, end sql.NullString

	if err := scanner.Scan(&project.ID, &project.Name, &begin, &end); err != nil {
		return nil, err
	}
	project.BeginDate = begin.String
	project.EndDate = end.String
	return project, nil
}

// ScanTask scans a full tasks row in table column order.
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var priority sql.NullInt64

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&priority,
		&task.StatusID,
		&task.ProjectID,
		&task.BeginDate,
		&task.EndDate,
	)
	if err != nil {
		return nil, err
	}
	task.Priority = priority.Int64
	return task, nil
}

// ScanProjectTask scans a row of the project/task join.
func ScanProjectTask(scanner Scanner) (*ProjectTask, error) {
	pt := &ProjectTask{}
	err := scanner.Scan(&pt.ProjectName, &pt.TaskName, &pt.ProjectID, &pt.TaskID, &pt.StatusID)
	if err != nil {
		return nil, err
	}
	return pt, nil
}

// ScanEmployee scans first, last, pay.
func ScanEmployee(scanner Scanner) (*Employee, error) {
	emp := &Employee{}
	var first, last sql.NullString
	var pay sql.NullInt64

	if err := scanner.Scan(&first, &last, &pay); err != nil {
		return nil, err
	}
	emp.First, emp.Last, emp.Pay = first.String, last.String, pay.Int64
	return emp, nil
}
