package datatable

import (
	"slices"
	"strings"
	"time"
)

// FilterValue is the active filter of a single column.
// Which fields are evaluated depends on the column type:
// Allowed for Nominal and Boolean columns,
// Needle and Range for Number columns,
// and Needle for all other types.
type FilterValue struct {
	// Allowed formatted values of a Nominal or Boolean column.
	// An empty set puts no constraint on the column.
	Allowed []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`

	// Needle is matched as substring against the formatted value,
	// or exactly for Number columns.
	// An empty Needle matches every defined value.
	Needle string `json:"needle,omitempty" yaml:"needle,omitempty"`

	// Range restricts the numeric value of a Number column.
	Range *NumberRange `json:"range,omitempty" yaml:"range,omitempty"`
}

// NumberRange is an inclusive numeric range,
// nil bounds are open.
type NumberRange struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Contains reports whether n lies within the range.
// A nil range contains every number.
func (r *NumberRange) Contains(n float64) bool {
	if r == nil {
		return true
	}
	return (r.Min == nil || n >= *r.Min) && (r.Max == nil || n <= *r.Max)
}

// TimeFilter restricts the rows to a time window
// of the values in Column. Zero Start or End bounds are open,
// set bounds are inclusive.
type TimeFilter struct {
	Column string    `json:"column"          yaml:"column"`
	Start  time.Time `json:"start,omitzero"  yaml:"start,omitempty"`
	End    time.Time `json:"end,omitzero"    yaml:"end,omitempty"`
}

func (f *TimeFilter) active() bool {
	return f != nil && f.Column != "" && (!f.Start.IsZero() || !f.End.IsZero())
}

// Keeps returns true if the value is inside the window
// or can't be parsed as time.
func (f *TimeFilter) Keeps(raw any) bool {
	val, defined := Unwrap(raw)
	if !defined {
		return true
	}
	t, ok := ParseTime(val)
	if !ok {
		return true
	}
	if !f.Start.IsZero() && t.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.After(f.End) {
		return false
	}
	return true
}

// FilterOptions configures the Filter stage.
type FilterOptions struct {
	Schema *Schema

	// Filters maps column keys to their active filter.
	// A column is filtered if it has an entry in the map.
	Filters map[string]FilterValue

	TimeFilter *TimeFilter

	// Search is matched case-sensitive as substring
	// against the formatted values of all columns.
	Search string

	// HideFilters disables the per column Filters
	// while TimeFilter and Search still apply.
	HideFilters bool
}

func (opts *FilterOptions) active() bool {
	return (!opts.HideFilters && len(opts.Filters) > 0) || opts.TimeFilter.active() || opts.Search != ""
}

// FilterResult holds the rows that passed the Filter stage
// in master order together with their master indices.
type FilterResult struct {
	Rows []IndexedRow
}

func (r FilterResult) Data() []Row    { return RowsOf(r.Rows) }
func (r FilterResult) Indices() []int { return IndicesOf(r.Rows) }
func (r FilterResult) Len() int       { return len(r.Rows) }

// Filter returns the rows that match all column filters,
// the time filter and the search query, in their original order.
// Without any active constraint all rows pass.
func Filter(rows []Row, opts FilterOptions) FilterResult {
	if !opts.active() {
		return FilterResult{Rows: IndexRows(rows)}
	}
	result := FilterResult{Rows: make([]IndexedRow, 0, len(rows))}
	for i, row := range rows {
		if matchRow(row, &opts) {
			result.Rows = append(result.Rows, IndexedRow{Index: i, Row: row})
		}
	}
	return result
}

func matchRow(row Row, opts *FilterOptions) bool {
	if !opts.HideFilters {
		for key, filter := range opts.Filters {
			if !matchColumn(row, key, filter, opts.Schema) {
				return false
			}
		}
	}
	if opts.TimeFilter.active() && !opts.TimeFilter.Keeps(row[opts.TimeFilter.Column]) {
		return false
	}
	if opts.Search != "" && !matchSearch(row, opts.Search, opts.Schema) {
		return false
	}
	return true
}

func matchColumn(row Row, key string, filter FilterValue, schema *Schema) bool {
	colType := schema.Type(key)
	if colType.IsCategorical() && len(filter.Allowed) == 0 {
		return true
	}
	raw, ok := row.Cell(key)
	if !ok || IsEmpty(raw) {
		// Can't match what doesn't exist
		return false
	}
	switch {
	case colType.IsCategorical():
		return slices.Contains(filter.Allowed, schema.FormatCell(key, raw))

	case colType == Number:
		if filter.Range != nil {
			val, _ := Unwrap(raw)
			n, ok := AsNumber(val)
			if !ok || !filter.Range.Contains(n) {
				return false
			}
		}
		return filter.Needle == "" || schema.FormatCell(key, raw) == strings.TrimSpace(filter.Needle)

	default:
		return strings.Contains(schema.FormatCell(key, raw), filter.Needle)
	}
}

func matchSearch(row Row, search string, schema *Schema) bool {
	keys := schema.Keys()
	if len(keys) == 0 {
		for key := range row {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		raw, ok := row.Cell(key)
		if !ok || IsEmptyOrMissing(raw) {
			continue
		}
		if strings.Contains(schema.FormatCell(key, raw), search) {
			return true
		}
	}
	return false
}
