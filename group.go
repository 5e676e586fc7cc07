package datatable

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// NoGroupColumn is the group column value that disables grouping.
	// It is also the title of the single group in that case.
	NoGroupColumn = "None"

	// MissingGroupTitle is the title of the group of rows
	// with an empty or missing group column value.
	MissingGroupTitle = "Missing"

	// MissingGroupFallbackTitle replaces MissingGroupTitle
	// when a group of actual values is already titled "Missing".
	MissingGroupFallbackTitle = "No group"
)

// GroupKeyKind tells value groups apart from the missing bucket.
type GroupKeyKind int

const (
	GroupKeyValue GroupKeyKind = iota
	GroupKeyMissing
)

// GroupKey identifies a group either by the formatted
// group column value or as the bucket of missing values.
// The missing bucket never equals a value key,
// even one with the value "Missing".
type GroupKey struct {
	Kind  GroupKeyKind
	Value string
}

// ValueGroupKey returns the key of the group of a formatted value.
func ValueGroupKey(value string) GroupKey { return GroupKey{Kind: GroupKeyValue, Value: value} }

// MissingGroupKey returns the key of the bucket of rows
// with a missing group column value.
func MissingGroupKey() GroupKey { return GroupKey{Kind: GroupKeyMissing} }

func (k GroupKey) IsMissing() bool { return k.Kind == GroupKeyMissing }

func (k GroupKey) String() string {
	if k.IsMissing() {
		return "<missing>"
	}
	return k.Value
}

// Group is a named partition of rows.
type Group struct {
	Key   GroupKey
	Title string
	Rows  []IndexedRow
}

func (g Group) Len() int       { return len(g.Rows) }
func (g Group) Data() []Row    { return RowsOf(g.Rows) }
func (g Group) Indices() []int { return IndicesOf(g.Rows) }

// Grouping is the ordered result of the Group stage.
type Grouping struct {
	Column string
	Groups []Group
}

// Titles returns the display titles of the groups in order.
func (g Grouping) Titles() []string {
	titles := make([]string, len(g.Groups))
	for i, group := range g.Groups {
		titles[i] = group.Title
	}
	return titles
}

// Data returns the rows of every group.
func (g Grouping) Data() [][]Row {
	data := make([][]Row, len(g.Groups))
	for i, group := range g.Groups {
		data[i] = group.Data()
	}
	return data
}

// Indices returns the master indices of the rows of every group.
func (g Grouping) Indices() [][]int {
	indices := make([][]int, len(g.Groups))
	for i, group := range g.Groups {
		indices[i] = group.Indices()
	}
	return indices
}

// NumRows returns the number of rows of all groups.
func (g Grouping) NumRows() int {
	n := 0
	for _, group := range g.Groups {
		n += group.Len()
	}
	return n
}

// IsGrouped returns true if column names an actual group column.
func IsGrouped(column string) bool {
	return column != "" && column != NoGroupColumn
}

// GroupRows partitions rows by the formatted value of column.
//
// Without a group column all rows form one group titled "None".
// Otherwise groups are ordered case-insensitive by their value
// with the group of empty and missing values last.
// Rows keep their order within a group.
func GroupRows(rows []IndexedRow, schema *Schema, column string) Grouping {
	if !IsGrouped(column) {
		return Grouping{
			Column: NoGroupColumn,
			Groups: []Group{{
				Key:   ValueGroupKey(NoGroupColumn),
				Title: NoGroupColumn,
				Rows:  slices.Clone(rows),
			}},
		}
	}

	var (
		groups  []Group
		byValue = make(map[string]int)
		missing = -1
	)
	for _, r := range rows {
		if r.Row.IsEmptyOrMissing(column) {
			if missing < 0 {
				missing = len(groups)
				groups = append(groups, Group{Key: MissingGroupKey()})
			}
			groups[missing].Rows = append(groups[missing].Rows, r)
			continue
		}
		value := schema.FormatCell(column, r.Row[column])
		i, ok := byValue[value]
		if !ok {
			i = len(groups)
			byValue[value] = i
			groups = append(groups, Group{Key: ValueGroupKey(value), Title: value})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}

	if missing >= 0 {
		if _, collision := byValue[MissingGroupTitle]; collision {
			groups[missing].Title = MissingGroupFallbackTitle
		} else {
			groups[missing].Title = MissingGroupTitle
		}
	}

	collator := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(groups, func(a, b Group) int {
		switch {
		case a.Key.IsMissing() && b.Key.IsMissing():
			return 0
		case a.Key.IsMissing():
			return 1
		case b.Key.IsMissing():
			return -1
		}
		if c := collator.CompareString(a.Key.Value, b.Key.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Key.Value, b.Key.Value)
	})

	return Grouping{Column: column, Groups: groups}
}
