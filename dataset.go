package datatable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// NewDatasetFromStrings converts string rows to a master dataset
// with typed cell values for the passed columns.
//
// header contains the column keys of the string columns.
// Every column must be part of the header, else an error
// wrapping ErrUnknownColumn is returned.
// If columns is empty then every header column becomes a String column.
//
// Cell strings are converted by column type:
//   - Number: float64, unparsable strings are kept as is
//   - Boolean: bool, unparsable strings are kept as is
//   - DateTime: time.Time, unparsable strings are kept as is
//   - Array, Object: decoded JSON, invalid JSON is kept as string
//   - Nominal, String: the trimmed string
//
// Empty strings and cells beyond the length of a row
// become undefined cells.
func NewDatasetFromStrings(columns Columns, header []string, rows [][]string) ([]Row, Columns, error) {
	headerIndex := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, exists := headerIndex[h]; !exists {
			headerIndex[h] = i
		}
	}
	if len(columns) == 0 {
		columns = make(Columns, 0, len(header))
		for _, h := range header {
			columns = append(columns, Column{Key: strings.TrimSpace(h), Type: String})
		}
	}
	colIndex := make([]int, len(columns))
	for i, col := range columns {
		idx, ok := headerIndex[col.Key]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q not in header %q", ErrUnknownColumn, col.Key, header)
		}
		colIndex[i] = idx
	}

	dataset := make([]Row, len(rows))
	for r, strs := range rows {
		row := make(Row, len(columns))
		for c, col := range columns {
			idx := colIndex[c]
			if idx >= len(strs) {
				continue
			}
			str := strings.TrimSpace(strs[idx])
			if str == "" {
				continue
			}
			row[col.Key] = ParseCellString(col.Type, str)
		}
		dataset[r] = row
	}
	return dataset, columns, nil
}

// ParseCellString converts a non empty string to
// a value matching the column type if possible.
func ParseCellString(t ColumnType, str string) any {
	switch t {
	case Number:
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return f
		}
	case Boolean:
		if b, err := strconv.ParseBool(str); err == nil {
			return b
		}
	case DateTime:
		if tm, ok := ParseTime(str); ok {
			return tm
		}
	case Array, Object:
		if v, err := oj.ParseString(str); err == nil {
			return v
		}
	}
	return str
}

// RemoveEmptyStringRows removes rows that contain only
// whitespace strings from the passed rows.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	filtered := rows[:0]
	for _, row := range rows {
		if !isEmptyStringRow(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func isEmptyStringRow(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
