package datatable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	groups := [][]int{{1, 2, 3}, {4, 5, 6, 7, 8}, {9, 10}}

	tests := []struct {
		name      string
		pageSize  int
		pageStart int
		pageEnd   int
		want      [][]int
	}{
		{
			name:      "window straddles groups",
			pageSize:  5,
			pageStart: 5,
			pageEnd:   11,
			want:      [][]int{{}, {6, 7, 8}, {9, 10}},
		},
		{
			name:      "first page",
			pageSize:  5,
			pageStart: 0,
			pageEnd:   5,
			want:      [][]int{{1, 2, 3}, {4, 5}, {}},
		},
		{
			name:      "last partial page",
			pageSize:  4,
			pageStart: 8,
			pageEnd:   12,
			want:      [][]int{{}, {}, {9, 10}},
		},
		{
			name:      "window past the end",
			pageSize:  5,
			pageStart: 20,
			pageEnd:   25,
			want:      [][]int{{}, {}, {}},
		},
		{
			name:      "everything on one page",
			pageSize:  10,
			pageStart: 0,
			pageEnd:   10,
			want:      [][]int{{1, 2, 3}, {4, 5, 6, 7, 8}, {9, 10}},
		},
		{
			name:      "zero page size",
			pageSize:  0,
			pageStart: 0,
			pageEnd:   10,
			want:      [][]int{{}, {}, {}},
		},
		{
			name:      "inverted window",
			pageSize:  5,
			pageStart: 6,
			pageEnd:   2,
			want:      [][]int{{}, {}, {}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, sel := Paginate(groups, nil, tt.pageSize, tt.pageStart, tt.pageEnd)
			require.Equal(t, tt.want, data)
			require.Len(t, sel, len(groups))
			for _, s := range sel {
				require.Nil(t, s)
			}
		})
	}
}

func TestPaginate_Budget(t *testing.T) {
	groups := [][]int{{0, 1}, {2}, {}, {3, 4, 5, 6}, {7, 8, 9}, {10}}
	total := 11
	for pageSize := 1; pageSize <= total+1; pageSize++ {
		for page := 1; page <= NumPages(pageSize, total)+1; page++ {
			start, end := PageWindow(pageSize, page)
			data, _ := Paginate(groups, nil, pageSize, start, end)
			require.Len(t, data, len(groups))

			var got []int
			for _, g := range data {
				got = append(got, g...)
			}
			require.LessOrEqual(t, len(got), pageSize)

			// The page is the window over the concatenated groups
			var want []int
			for i := start; i < min(end, total); i++ {
				want = append(want, i)
			}
			require.Equal(t, want, got, "pageSize %d page %d", pageSize, page)
		}
	}
}

func TestPaginate_Selection(t *testing.T) {
	groups := [][]int{{1, 2, 3}, {4, 5, 6, 7, 8}, {9, 10}}
	selection := [][]bool{
		{true, false, true},
		{false, true, false, true}, // shorter than its group
	}

	data, sel := Paginate(groups, selection, 5, 5, 10)
	require.Equal(t, [][]int{{}, {6, 7, 8}, {9, 10}}, data)
	require.Equal(t, []bool{}, sel[0])
	require.Equal(t, []bool{false, true}, sel[1])
	require.Nil(t, sel[2], "group without selection")
}

func TestPaginate_ClipsGroups(t *testing.T) {
	backing := []int{1, 2, 3, 4, 5}
	groups := [][]int{backing[:2], backing[2:4]}
	selection := [][]bool{{true, false, true}}

	// First group fully on the page, second group partially
	data, sel := Paginate(groups, selection, 3, 0, 3)
	require.Equal(t, [][]int{{1, 2}, {3}}, data)
	require.Equal(t, []bool{true, false}, sel[0])

	_ = append(data[0], 98)
	_ = append(data[1], 99)
	_ = append(sel[0], false)
	require.Equal(t, []int{1, 2, 3, 4, 5}, backing, "appending to page groups must not write into the input")
	require.Equal(t, []bool{true, false, true}, selection[0])
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		pageSize, page int
		start, end     int
	}{
		{pageSize: 5, page: 1, start: 0, end: 5},
		{pageSize: 5, page: 3, start: 10, end: 15},
		{pageSize: 5, page: 0, start: 0, end: 5},
		{pageSize: 0, page: 2, start: 0, end: 0},
	}
	for _, tt := range tests {
		start, end := PageWindow(tt.pageSize, tt.page)
		require.Equal(t, tt.start, start, "PageWindow(%d, %d)", tt.pageSize, tt.page)
		require.Equal(t, tt.end, end, "PageWindow(%d, %d)", tt.pageSize, tt.page)
	}
}

func TestGetNextPage(t *testing.T) {
	require.Equal(t, 2, GetNextPage(5, 3, 10))
	require.Equal(t, 3, GetNextPage(5, 3, 11))
	require.Equal(t, 1, GetNextPage(5, 3, 0))
	require.Equal(t, 1, GetNextPage(5, 0, 10))
	require.Equal(t, 2, GetNextPage(5, 2, 10))

	require.Equal(t, 1, NumPages(5, 0))
	require.Equal(t, 2, NumPages(5, 10))
	require.Equal(t, 3, NumPages(5, 11))
	require.Equal(t, 1, NumPages(0, 11))
}

func TestPaginateGroups(t *testing.T) {
	schema := NewSchema(nil, Column{Key: "c", Type: Nominal})
	rows := []Row{{"c": "A"}, {"c": "B"}, {"c": "A"}, {"c": "B"}, {"c": "C"}}
	grouping := GroupRows(IndexRows(rows), schema, "c")

	sel := NewSelection(len(rows))
	sel.Set(3, true)
	page := PaginateGroups(grouping.Groups, sel.Project(grouping.Indices()), 2, 2, 4)

	require.Equal(t, []string{"A", "B", "C"}, page.Titles())
	require.Equal(t, [][]int{{}, {1, 3}, {}}, page.Indices())
	require.Equal(t, [][]bool{{}, {false, true}, {}}, page.Selection())
	require.Equal(t, 2, page.NumRows())
	require.Equal(t, [][]Row{{}, {rows[1], rows[3]}, {}}, page.Data())
}
