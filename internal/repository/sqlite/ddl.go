package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// ColumnDef is a column of a table created by a bulk append.
type ColumnDef struct {
	Name    string
	SQLType string
}

// InferColumns derives column affinities from the values found in rows:
// any text makes a column TEXT, otherwise any float makes it REAL,
// otherwise integers give INTEGER. Columns with only NULLs are TEXT.
func InferColumns(columns []string, rows [][]any) []ColumnDef {
	defs := make([]ColumnDef, len(columns))
	for j, name := range columns {
		var sawInt, sawFloat, sawText, sawBlob bool
		for _, row := range rows {
			if j >= len(row) {
				continue
			}
			switch row[j].(type) {
			case nil:
			case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
				sawInt = true
			case float32, float64:
				sawFloat = true
			case []byte:
				sawBlob = true
			default:
				sawText = true
			}
		}
		defs[j] = ColumnDef{Name: name, SQLType: affinity(sawInt, sawFloat, sawText, sawBlob)}
	}
	return defs
}

func affinity(sawInt, sawFloat, sawText, sawBlob bool) string {
	switch {
	case sawText:
		return "TEXT"
	case sawBlob && !sawInt && !sawFloat:
		return "BLOB"
	case sawBlob:
		return "TEXT"
	case sawFloat:
		return "REAL"
	case sawInt:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL renders CREATE TABLE IF NOT EXISTS with every
// identifier double-quoted.
func BuildCreateTableSQL(table string, cols []ColumnDef) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("table name must not be empty")
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("at least one column is required for table %s", table)
	}

	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("column with empty name in table %s", table)
		}
		parts = append(parts, quoteIdent(c.Name)+" "+c.SQLType)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		quoteIdent(table), strings.Join(parts, ",\n  ")), nil
}

// BuildInsertSQL renders a positional INSERT for the given columns.
func BuildInsertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// bindValue converts values the driver would store awkwardly.
func bindValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return v
	}
}
