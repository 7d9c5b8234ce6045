package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmpty is returned when a source has no header row.
var ErrEmpty = errors.New("sheet: source has no header row")

// ReadOptions tunes how a file is turned into a Table.
type ReadOptions struct {
	// Sheet selects a worksheet by name; the first sheet when empty.
	// Ignored for CSV.
	Sheet string

	// NormalizeColumns trims headers and replaces spaces with underscores.
	NormalizeColumns bool

	// Comma overrides the CSV delimiter (default ',').
	Comma rune
}

// ReadFile dispatches on the file extension.
func ReadFile(path string, opts ReadOptions) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ReadXLSX(path, opts)
	case ".csv", ".txt", ".tsv":
		if opts.Comma == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
			opts.Comma = '\t'
		}
		f, err := os.Open(path)
		if err != nil {
			return Table{}, err
		}
		defer f.Close()
		return ReadCSV(f, opts)
	default:
		return Table{}, fmt.Errorf("sheet: unsupported file type %q", filepath.Ext(path))
	}
}

// ReadXLSX loads one worksheet of an Excel workbook. Cells keep the type
// Excel stored: text stays text, numbers become int64 or float64, and
// date-formatted numbers become DateTimeLayout strings.
func ReadXLSX(path string, opts ReadOptions) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("sheet: open workbook: %w", err)
	}
	defer f.Close()

	name := opts.Sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, ErrEmpty
		}
		name = sheets[0]
	}
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return Table{}, fmt.Errorf("sheet: worksheet %q not found", name)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("sheet: read rows of %q: %w", name, err)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmpty
	}

	cells := newCellReader(f, name)
	header := make([]string, len(rows[0]))
	for c, raw := range rows[0] {
		v, err := cells.value(c+1, 1, raw)
		if err != nil {
			return Table{}, err
		}
		if v != nil {
			header[c] = fmt.Sprint(v)
		}
	}

	records := make([][]any, 0, len(rows)-1)
	for r, rec := range rows[1:] {
		row := make([]any, len(rec))
		for c, raw := range rec {
			if row[c], err = cells.value(c+1, r+2, raw); err != nil {
				return Table{}, err
			}
		}
		records = append(records, row)
	}
	return build(header, records, opts.NormalizeColumns)
}

// ReadCSV reads a header line followed by records. Short records are padded
// with nil, long ones add column_N columns; a UTF-8 BOM on the first header
// cell is dropped.
func ReadCSV(r io.Reader, opts ReadOptions) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return Table{}, ErrEmpty
	}
	if err != nil {
		return Table{}, fmt.Errorf("sheet: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("sheet: read records: %w", err)
	}
	return fromStrings(header, records, opts.NormalizeColumns)
}
