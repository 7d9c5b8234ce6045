// Package sheet reads tabular files (xlsx, csv) into an ordered Table that
// the repository can bulk-append into SQLite.
package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table is an ordered set of records sharing one header. Rows[i][j] is the
// value of Columns[j] in record i; every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Rows)
}

// Append adds a row, padding with nil or rejecting extra cells.
func (t *Table) Append(values ...any) error {
	if len(values) > len(t.Columns) {
		return fmt.Errorf("row has %d cells but table has %d columns", len(values), len(t.Columns))
	}
	row := make([]any, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// NormalizeColumn trims a header, strips accents and replaces inner spaces
// with underscores. Case is kept.
func NormalizeColumn(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		plain = strings.TrimSpace(name)
	}
	return strings.ReplaceAll(plain, " ", "_")
}

// uniqueColumns fills blank headers and suffixes duplicates so every column
// can become a distinct SQL identifier.
func uniqueColumns(headers []string, normalize bool) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if normalize {
			name = NormalizeColumn(name)
		}
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		key := strings.ToLower(name)
		if n := seen[key]; n > 0 {
			seen[key] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
			key = strings.ToLower(name)
		}
		seen[key]++
		out[i] = name
	}
	return out
}

// DateTimeLayout is how date and time cells are written out.
const DateTimeLayout = "2006-01-02 15:04:05"

var numberLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseValue types a raw text cell: empty becomes nil, integers int64, other
// decimal numbers float64, everything else the trimmed string. Text that
// would not survive the conversion stays text: leading zeros ("00123"),
// NaN and Inf spellings, and integers too large for int64.
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if !numberLiteral.MatchString(s) || hasLeadingZero(s) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// build assembles a Table from a header and typed records. Records wider
// than the header get extra columns named like blank headers (column_N);
// short records are padded with nil; blank records are skipped.
func build(header []string, records [][]any, normalize bool) (Table, error) {
	width := len(header)
	for _, rec := range records {
		width = max(width, len(rec))
	}
	padded := make([]string, width)
	copy(padded, header)

	t := Table{Columns: uniqueColumns(padded, normalize)}
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if err := t.Append(rec...); err != nil {
			return Table{}, err
		}
	}
	return t, nil
}

// fromStrings types every cell with ParseValue and builds a Table.
func fromStrings(header []string, records [][]string, normalize bool) (Table, error) {
	typed := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, cell := range rec {
			row[j] = ParseValue(cell)
		}
		typed[i] = row
	}
	return build(header, typed, normalize)
}

func isBlank(rec []any) bool {
	for _, cell := range rec {
		switch v := cell.(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
