package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// SortDirection is the multiplier applied to the
// comparison of two sort values.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// Valid returns true for Ascending and Descending.
func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return fmt.Sprintf("SortDirection(%d)", int(d))
}

// SortOptions configures the Sort stage.
type SortOptions struct {
	Schema *Schema

	// GroupColumn is the column the groups were built from.
	GroupColumn string

	// Column to sort by, no sorting if empty.
	Column string

	// Direction defaults to Ascending if not valid.
	Direction SortDirection
}

// sortKey caches everything the comparison
// needs to know about a cell.
type sortKey struct {
	row     IndexedRow
	missing bool
	length  int // -1 if not an array
	number  float64
	numeric bool
	json    string
	group   string
}

// SortGroups orders the rows within every group by the sort column.
// The order of the groups is never changed.
//
// Empty and missing values sort last in both directions,
// the direction only applies to the order of present values.
// Array values compare by length first.
// Other values compare by their JSON encoding.
//
// Number columns depart from plain JSON ordering:
// numeric values and numeric strings compare numerically
// and sort before non-numeric values in both directions,
// which compare by their JSON encoding among themselves.
// So 9 sorts before 10, unlike "9" and "10" as JSON.
//
// The sort is stable.
func SortGroups(groups []Group, opts SortOptions) []Group {
	sorted := make([]Group, len(groups))
	for i, g := range groups {
		sorted[i] = Group{Key: g.Key, Title: g.Title, Rows: slices.Clone(g.Rows)}
	}
	if opts.Column == "" {
		return sorted
	}
	dir := opts.Direction
	if !dir.Valid() {
		dir = Ascending
	}
	colType := opts.Schema.Type(opts.Column)
	grouped := IsGrouped(opts.GroupColumn)

	for gi := range sorted {
		keys := make([]sortKey, len(sorted[gi].Rows))
		for i, r := range sorted[gi].Rows {
			keys[i] = makeSortKey(r, opts.Column, colType)
			if grouped {
				keys[i].group = groupValue(r.Row, opts.GroupColumn, opts.Schema)
			}
		}
		slices.SortStableFunc(keys, func(a, b sortKey) int {
			if grouped && a.group != b.group {
				return 0
			}
			return compareSortKeys(a, b, colType, dir)
		})
		for i, k := range keys {
			sorted[gi].Rows[i] = k.row
		}
	}
	return sorted
}

func makeSortKey(r IndexedRow, column string, colType ColumnType) sortKey {
	key := sortKey{row: r, length: -1}
	raw, ok := r.Row.Cell(column)
	if !ok || IsEmptyOrMissing(raw) {
		key.missing = true
		return key
	}
	val, _ := Unwrap(raw)
	if colType == Array {
		if v := reflect.ValueOf(val); v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			key.length = v.Len()
		}
	}
	if colType == Number {
		key.number, key.numeric = AsNumber(val)
	}
	str, err := stringifyJSON(val)
	if err != nil {
		str = fmt.Sprint(val)
	}
	key.json = str
	return key
}

func compareSortKeys(a, b sortKey, colType ColumnType, dir SortDirection) int {
	switch {
	case a.missing && b.missing:
		return 0
	case a.missing:
		return 1
	case b.missing:
		return -1
	}
	if colType == Array && a.length >= 0 && b.length >= 0 && a.length != b.length {
		return cmp.Compare(a.length, b.length) * int(dir)
	}
	if colType == Number {
		// Numbers before non-numeric values in both directions
		switch {
		case a.numeric && b.numeric:
			return cmp.Compare(a.number, b.number) * int(dir)
		case a.numeric:
			return -1
		case b.numeric:
			return 1
		}
	}
	return strings.Compare(a.json, b.json) * int(dir)
}

func groupValue(row Row, column string, schema *Schema) string {
	if row.IsEmptyOrMissing(column) {
		return ""
	}
	return "=" + schema.FormatCell(column, row[column])
}
