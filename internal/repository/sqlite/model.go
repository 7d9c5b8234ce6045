package sqlite

import "fmt"

// Project is a row of the projects table.
type Project struct {
	ID        int64
	Name      string
	BeginDate string
	EndDate   string
}

// Task is a row of the tasks table. ProjectID is declared as a foreign key
// but is only enforced when the connection enables foreign keys.
type Task struct {
	ID        int64
	Name      string
	Priority  int64
	StatusID  int64
	ProjectID int64
	BeginDate string
	EndDate   string
}

// Values returns the task in column order, the shape of a tasks row.
func (t *Task) Values() []any {
	return []any{t.ID, t.Name, t.Priority, t.StatusID, t.ProjectID, t.BeginDate, t.EndDate}
}

// TaskUpdate carries the mutable fields of a task.
type TaskUpdate struct {
	ID        int64
	Priority  int64
	BeginDate string
	EndDate   string
}

// ProjectTask is one row of the project/task join.
type ProjectTask struct {
	ProjectName string
	TaskName    string
	ProjectID   int64
	TaskID      int64
	StatusID    int64
}

// Employee is a row of the employees table. It has no surrogate key;
// rows are addressed by (First, Last).
type Employee struct {
	First string
	Last  string
	Pay   int64
}

// Email returns first.last@email.com
func (e Employee) Email() string {
	return fmt.Sprintf("%s.%s@email.com", e.First, e.Last)
}

// FullName returns "first last".
func (e Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.First, e.Last)
}

func (e Employee) String() string {
	return fmt.Sprintf("Employee('%s', '%s', %d)", e.First, e.Last, e.Pay)
}
