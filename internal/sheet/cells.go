package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// cellReader types raw worksheet values using the cell's stored type and
// number format. Date detection is cached per style.
type cellReader struct {
	f         *excelize.File
	sheet     string
	date1904  bool
	dateStyle map[int]bool
}

func newCellReader(f *excelize.File, sheet string) *cellReader {
	c := &cellReader{f: f, sheet: sheet, dateStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		c.date1904 = *props.Date1904
	}
	return c
}

func (c *cellReader) value(col, row int, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	typ, err := c.f.GetCellType(c.sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("sheet: type of %s: %w", cell, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return raw, nil
	case excelize.CellTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return raw, nil
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case excelize.CellTypeError:
		return nil, nil
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format(DateTimeLayout), nil
			}
		}
		return raw, nil
	}

	isDate, err := c.isDate(cell)
	if err != nil {
		return nil, err
	}
	if isDate {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, c.date1904); err == nil {
				t = t.Round(time.Second)
				if serial < 1 {
					return t.Format(time.TimeOnly), nil
				}
				return t.Format(DateTimeLayout), nil
			}
		}
	}
	return ParseValue(raw), nil
}

func (c *cellReader) isDate(cell string) (bool, error) {
	idx, err := c.f.GetCellStyle(c.sheet, cell)
	if err != nil {
		return false, fmt.Errorf("sheet: style of %s: %w", cell, err)
	}
	if v, ok := c.dateStyle[idx]; ok {
		return v, nil
	}

	style, err := c.f.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("sheet: style %d: %w", idx, err)
	}
	isDate := isDateNumFmt(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	c.dateStyle[idx] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a built-in number format shows a date or time.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

var formatNoise = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.|_.|\*.`)

// isDateFormatCode reports whether a custom format code has date or time
// tokens once literals, colors and locale tags are removed.
func isDateFormatCode(code string) bool {
	section := strings.SplitN(code, ";", 2)[0]
	section = strings.ToLower(formatNoise.ReplaceAllString(section, ""))
	return strings.ContainsAny(section, "ydhs") || strings.Contains(section, "mm")
}
