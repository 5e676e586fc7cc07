package datatable

import "slices"

// Paginate slices the groups to the rows that fall into the page window
// [pageStart, pageEnd) over the concatenation of all groups in order.
//
// The group partition is preserved: groups outside the window
// are returned as empty slices, groups straddling a window bound
// are sliced partially. At most pageSize rows are returned in total,
// the remaining budget is consumed group by group.
//
// selection is sliced with the same bounds as the groups.
// A group without selection, or with a shorter selection,
// gets a nil or shortened selection slice.
//
// The returned slices share the backing arrays of groups and selection
// but have their capacity clipped, so appending to them never
// overwrites rows of the input.
//
// Example:
//
//	data, _ := Paginate([][]int{{1, 2, 3}, {4, 5, 6, 7, 8}, {9, 10}}, nil, 5, 5, 11)
//	// data == [][]int{{}, {6, 7, 8}, {9, 10}}
func Paginate[T any](groups [][]T, selection [][]bool, pageSize, pageStart, pageEnd int) (data [][]T, sel [][]bool) {
	data = make([][]T, len(groups))
	sel = make([][]bool, len(groups))

	pageEnd = max(pageEnd, pageStart)
	budget := pageSize
	groupStart := 0
	for g, rows := range groups {
		groupEnd := groupStart + len(rows)

		switch {
		case budget <= 0 || groupEnd <= pageStart || groupStart >= pageEnd || len(rows) == 0:
			data[g] = []T{}
			sel[g] = sliceSelection(selection, g, 0, 0)

		case groupStart >= pageStart && groupEnd <= pageEnd && len(rows) <= budget:
			data[g] = slices.Clip(rows)
			sel[g] = sliceSelection(selection, g, 0, len(rows))
			budget -= len(rows)

		default:
			start := max(pageStart-groupStart, 0)
			end := min(pageEnd-groupStart, len(rows), start+budget)
			data[g] = rows[start:end:end]
			sel[g] = sliceSelection(selection, g, start, end)
			budget -= end - start
		}

		groupStart = groupEnd
	}
	return data, sel
}

func sliceSelection(selection [][]bool, group, start, end int) []bool {
	if group >= len(selection) || selection[group] == nil {
		return nil
	}
	s := selection[group]
	start = min(start, len(s))
	end = min(end, len(s))
	return s[start:end:end]
}

// PageWindow returns the row offsets [start, end)
// of the 1-based page number currentPage.
// Page numbers below 1 are treated as the first page.
func PageWindow(pageSize, currentPage int) (start, end int) {
	if pageSize <= 0 {
		return 0, 0
	}
	currentPage = max(currentPage, 1)
	start = pageSize * (currentPage - 1)
	return start, start + pageSize
}

// NumPages returns the number of pages needed for numRows,
// at least one.
func NumPages(pageSize, numRows int) int {
	if pageSize <= 0 || numRows <= 0 {
		return 1
	}
	return (numRows + pageSize - 1) / pageSize
}

// GetNextPage returns currentPage if it still contains rows,
// else the closest page that does.
//
//	GetNextPage(5, 3, 10) == 2
func GetNextPage(pageSize, currentPage, availableRows int) int {
	lastPage := NumPages(pageSize, availableRows)
	switch {
	case currentPage < 1:
		return 1
	case currentPage > lastPage:
		return lastPage
	}
	return currentPage
}

// PageGroup is the part of a group that is visible on a page.
type PageGroup struct {
	Key       GroupKey
	Title     string
	Rows      []IndexedRow
	Selection []bool
}

func (g PageGroup) Data() []Row    { return RowsOf(g.Rows) }
func (g PageGroup) Indices() []int { return IndicesOf(g.Rows) }

// Page is the result of the Paginate stage with
// one PageGroup for every group, including empty ones.
type Page struct {
	Start    int
	End      int
	PageSize int
	Groups   []PageGroup
}

// Titles returns the group titles of the page,
// including groups without visible rows.
func (p Page) Titles() []string {
	titles := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		titles[i] = g.Title
	}
	return titles
}

// Data returns the visible rows per group.
func (p Page) Data() [][]Row {
	data := make([][]Row, len(p.Groups))
	for i, g := range p.Groups {
		data[i] = g.Data()
	}
	return data
}

// Indices returns the master indices of the visible rows per group.
func (p Page) Indices() [][]int {
	indices := make([][]int, len(p.Groups))
	for i, g := range p.Groups {
		indices[i] = g.Indices()
	}
	return indices
}

// Selection returns the selection flags of the visible rows per group.
func (p Page) Selection() [][]bool {
	sel := make([][]bool, len(p.Groups))
	for i, g := range p.Groups {
		sel[i] = g.Selection
	}
	return sel
}

// NumRows returns the number of rows on the page.
func (p Page) NumRows() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Rows)
	}
	return n
}

// PaginateGroups applies Paginate to sorted groups and their selection.
func PaginateGroups(groups []Group, selection [][]bool, pageSize, pageStart, pageEnd int) Page {
	rows := make([][]IndexedRow, len(groups))
	for i, g := range groups {
		rows[i] = g.Rows
	}
	data, sel := Paginate(rows, selection, pageSize, pageStart, pageEnd)
	page := Page{
		Start:    pageStart,
		End:      pageEnd,
		PageSize: pageSize,
		Groups:   make([]PageGroup, len(groups)),
	}
	for i, g := range groups {
		page.Groups[i] = PageGroup{
			Key:       g.Key,
			Title:     g.Title,
			Rows:      data[i],
			Selection: sel[i],
		}
	}
	return page
}
