package datatable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatasetView(t *testing.T) {
	cols := Columns{
		{Key: "name", Title: "Name"},
		{Key: "amount", Type: Number},
	}
	view := &DatasetView{
		Tit:  "Orders",
		Cols: cols,
		Rows: []Row{
			{"name": "a", "amount": Envelope{Value: 1.5, Color: "red"}},
			{"name": "b"},
		},
	}

	require.Equal(t, "Orders", view.Title())
	require.Equal(t, []string{"Name", "amount"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, 1.5, view.Cell(0, 1))
	require.Nil(t, view.Cell(1, 1))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 2))

	schema := NewSchema(nil, cols...)
	require.Equal(t, [][]string{{"a", "1.5"}, {"b", ""}}, FormattedRows(view, schema))
}

func TestPageView(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)
	result, err := p.Run(context.Background(), ViewConfig{
		GroupColumn: "city",
		SortColumn:  "amount",
		PageSize:    4,
	})
	require.NoError(t, err)
	// Graz: 1, 4 Linz: 6 Vienna: 2 on the first page
	require.Equal(t, [][]int{{1, 4}, {6}, {2}, {}}, result.PaginatedIndices())

	view := &PageView{Tit: "Orders", Cols: schema.Columns, Page: result.Page}
	require.Equal(t, 4, view.NumRows())

	wantIndices := []int{1, 4, 6, 2}
	wantGroups := []int{0, 0, 1, 2}
	for row := range view.NumRows() {
		r, g, ok := view.Locate(row)
		require.True(t, ok)
		require.Equal(t, wantIndices[row], r.Index)
		require.Equal(t, wantGroups[row], g)
	}
	_, _, ok := view.Locate(4)
	require.False(t, ok)
	_, _, ok = view.Locate(-1)
	require.False(t, ok)

	require.Equal(t, "g", view.Cell(2, 0))
	require.Equal(t, "Vienna", view.Cell(3, 1))
	require.Nil(t, view.Cell(4, 0))

	require.Equal(t, [][]string{
		{"b", "Graz", "3"},
		{"e", "Graz", "7"},
		{"g", "Linz", "9"},
		{"c", "Vienna", "1"},
	}, FormattedRows(view, schema))
}
