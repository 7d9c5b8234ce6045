package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Sheet1": {
			{"name", "begin date", "end_date"},
			{"Cool App", "2015-01-01", "2015-01-30"},
			{"Other App", "2015-02-01", "2015-02-28"},
		},
	})

	table, err := ReadFile(path, ReadOptions{NormalizeColumns: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "begin_date", "end_date"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []any{"Cool App", "2015-01-01", "2015-01-30"}, table.Rows[0])
}

func TestReadXLSXNumbersAndNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Sheet1": {{"ignored"}},
		"Data": {
			{"name", "priority", "weight"},
			{"Design", 1, 2.5},
		},
	})

	table, err := ReadXLSX(path, ReadOptions{Sheet: "Data"})
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, []any{"Design", int64(1), 2.5}, table.Rows[0])
}

func TestReadXLSXDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dates.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Sheet1": {
			{"name", "begin_date", "end_date"},
			{"App", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
			{"App", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 20, 9, 30, 0, 0, time.UTC)},
		},
	})

	table, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, []any{"App", "2020-01-01 00:00:00", "2020-01-02 00:00:00"}, table.Rows[0])
	assert.Equal(t, []any{"App", "2020-01-15 00:00:00", "2020-01-20 09:30:00"}, table.Rows[1])
}

func TestReadXLSXCustomDateFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.xlsx")
	f := excelize.NewFile()
	defer f.Close()

	format := "dd/mm/yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	require.NoError(t, err)
	plain, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"day", "amount"}))
	// 43831 is 2020-01-01 in the 1900 date system.
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 43831))
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", style))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 43831.5))
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", plain))
	require.NoError(t, f.SaveAs(path))

	table, err := ReadXLSX(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []any{"2020-01-01 00:00:00", 43831.5}, table.Rows[0])
}

func TestReadXLSXKeepsTextCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Sheet1": {
			{"code", "reading"},
			{"00123", "NaN", "extra"},
			{"42", 7},
		},
	})

	table, err := ReadXLSX(path, ReadOptions{NormalizeColumns: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "reading", "column_3"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []any{"00123", "NaN", "extra"}, table.Rows[0])
	// A number typed as text in the sheet stays text.
	assert.Equal(t, []any{"42", int64(7), nil}, table.Rows[1])
}

func TestReadXLSXMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.xlsx")
	writeWorkbook(t, path, map[string][][]any{"Sheet1": {{"a"}, {1}}})

	_, err := ReadXLSX(path, ReadOptions{Sheet: "Nope"})
	assert.Error(t, err)
}

func TestReadXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	writeWorkbook(t, path, map[string][][]any{"Sheet1": nil})

	_, err := ReadXLSX(path, ReadOptions{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadCSV(t *testing.T) {
	input := "\uFEFFname,priority,status_id,project_id,begin_date,end_date\n" +
		"Analyze the requirements of the app,1,1,1,2015-01-01,2015-01-02\n" +
		"\n" +
		"Confirm with user,1,1,1,2015-01-03\n"

	table, err := ReadCSV(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "name", table.Columns[0])
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []any{"Analyze the requirements of the app", int64(1), int64(1), int64(1), "2015-01-01", "2015-01-02"}, table.Rows[0])
	assert.Nil(t, table.Rows[1][5])
}

func TestReadCSVExtraCells(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n00123,NaN\n"), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "column_3"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, table.Rows[0])
	assert.Equal(t, []any{"00123", "NaN", nil}, table.Rows[1])
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ReadOptions{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadFileTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emps.tsv")
	require.NoError(t, os.WriteFile(path, []byte("first\tlast\tpay\nJane\tDoe\t90000\n"), 0644))

	table, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []any{"Jane", "Doe", int64(90000)}, table.Rows[0])
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := ReadFile("data.json", ReadOptions{})
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ReadOptions{})
	assert.Error(t, err)
}
