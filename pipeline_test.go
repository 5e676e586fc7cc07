package datatable

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func pipelineTestData() (*Schema, []Row) {
	schema := NewSchema(nil,
		Column{Key: "name", Type: String},
		Column{Key: "city", Type: Nominal},
		Column{Key: "amount", Type: Number},
	)
	rows := []Row{
		{"name": "a", "city": "Vienna", "amount": 5},
		{"name": "b", "city": "Graz", "amount": 3},
		{"name": "c", "city": "Vienna", "amount": 1},
		{"name": "d", "amount": 8},
		{"name": "e", "city": "Graz", "amount": 7},
		{"name": "f", "city": "Vienna", "amount": 2},
		{"name": "g", "city": "Linz", "amount": 9},
	}
	return schema, rows
}

func requireIndexFidelity(t *testing.T, rows []Row, result *Result) {
	t.Helper()
	for _, g := range result.Sorted {
		for _, r := range g.Rows {
			require.Equal(t, rows[r.Index], r.Row)
		}
	}
	for _, g := range result.Page.Groups {
		require.Len(t, g.Selection, len(g.Rows))
		for _, r := range g.Rows {
			require.Equal(t, rows[r.Index], r.Row)
		}
	}
}

func TestPipeline_Run(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)
	ctx := context.Background()

	config := ViewConfig{
		GroupColumn:   "city",
		SortColumn:    "amount",
		SortDirection: Descending,
		PageSize:      3,
	}

	tests := []struct {
		page          int
		wantPage      int
		wantPaginated [][]int
	}{
		{page: 0, wantPage: 1, wantPaginated: [][]int{{4, 1}, {6}, {}, {}}},
		{page: 1, wantPage: 1, wantPaginated: [][]int{{4, 1}, {6}, {}, {}}},
		{page: 2, wantPage: 2, wantPaginated: [][]int{{}, {}, {0, 5, 2}, {}}},
		{page: 3, wantPage: 3, wantPaginated: [][]int{{}, {}, {}, {3}}},
		{page: 9, wantPage: 3, wantPaginated: [][]int{{}, {}, {}, {3}}},
	}
	for _, tt := range tests {
		config.Page = tt.page
		result, err := p.Run(ctx, config)
		require.NoError(t, err)

		require.Equal(t, tt.wantPage, result.Config.Page)
		require.Equal(t, []string{"Graz", "Linz", "Vienna", "Missing"}, result.GroupTitles())
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, result.FilteredIndices())
		require.Equal(t, [][]int{{1, 4}, {6}, {0, 2, 5}, {3}}, result.GroupedIndices())
		require.Equal(t, [][]int{{4, 1}, {6}, {0, 5, 2}, {3}}, result.ProcessedIndices())
		require.Equal(t, tt.wantPaginated, result.PaginatedIndices(), "page %d", tt.page)
		requireIndexFidelity(t, rows, result)
	}
}

func TestPipeline_RunFiltered(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)

	config := ViewConfig{
		Filters:    map[string]FilterValue{"city": {Allowed: []string{"Vienna", "Linz"}}},
		SortColumn: "amount",
	}
	result, err := p.Run(context.Background(), config)
	require.NoError(t, err)

	require.Equal(t, []int{0, 2, 5, 6}, result.FilteredIndices())
	require.Equal(t, []string{NoGroupColumn}, result.GroupTitles())
	require.Equal(t, [][]int{{2, 5, 0, 6}}, result.PaginatedIndices(), "unpaginated")
	require.Equal(t, 1, result.Config.Page)
	require.Equal(t, [][]Row{{rows[2], rows[5], rows[0], rows[6]}}, result.PaginatedData())

	config.HideFilters = true
	result, err = p.Run(context.Background(), config)
	require.NoError(t, err)
	require.Len(t, result.FilteredIndices(), len(rows))

	config = config.WithoutFilter("city").WithFilter("name", FilterValue{Needle: "x"})
	config.HideFilters = false
	result, err = p.Run(context.Background(), config)
	require.NoError(t, err)
	require.Empty(t, result.FilteredIndices())
	require.Equal(t, [][]int{{}}, result.PaginatedIndices())
	require.Equal(t, 1, result.Config.Page)
}

func TestPipeline_RunErrors(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)

	_, err := p.Run(context.Background(), ViewConfig{SortColumn: "amount", SortDirection: 2})
	require.ErrorIs(t, err, ErrInvalidSortDirection)

	_, err = p.Run(context.Background(), ViewConfig{Page: -1})
	require.ErrorIs(t, err, ErrInvalidPage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx, ViewConfig{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Selection(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)
	ctx := context.Background()

	result, err := p.Run(ctx, ViewConfig{
		GroupColumn:   "city",
		SortColumn:    "amount",
		SortDirection: Descending,
		PageSize:      3,
		Page:          2,
	})
	require.NoError(t, err)
	require.Equal(t, [][]int{{}, {}, {0, 5, 2}, {}}, result.PaginatedIndices())

	require.True(t, p.SelectRow(result, true, 1, 2))
	require.Equal(t, []int{5}, p.Selection().Selected())
	require.Equal(t, [][]bool{{}, {}, {false, true, false}, {}}, result.PaginatedSelection())

	require.True(t, p.SelectProcessedRow(result, true, 0, 2))
	require.Equal(t, []int{0, 5}, p.Selection().Selected())
	require.Equal(t, [][]bool{{}, {}, {true, true, false}, {}}, result.PaginatedSelection())

	require.False(t, p.SelectRow(result, true, 3, 2), "out of range row")
	require.False(t, p.SelectRow(result, true, 0, 7), "out of range group")
	require.False(t, p.SelectProcessedRow(result, true, 0, 7), "out of range group")
	require.False(t, p.SelectProcessedRow(result, true, 3, 2), "out of range row")
	require.False(t, p.SelectProcessedRow(result, true, 0, 0), "group without rows on the page")
	require.Equal(t, []int{0, 5}, p.Selection().Selected())

	// Selection survives a rerun with different view
	result, err = p.Run(ctx, ViewConfig{Search: "Vienna"})
	require.NoError(t, err)
	require.Equal(t, [][]bool{{true, false, true}}, result.PaginatedSelection())

	p.SelectAll(result, true)
	require.Equal(t, []int{0, 2, 5}, p.Selection().Selected())
	require.Equal(t, [][]bool{{true, true, true}}, result.PaginatedSelection())

	p.SelectAll(result, false)
	require.Empty(t, p.Selection().Selected())

	// Same number of rows keeps the selection
	p.Selection().Set(1, true)
	p.SetData(rows)
	require.Equal(t, []int{1}, p.Selection().Selected())

	// Changed number of rows resets it
	p.SetData(rows[:4])
	require.Empty(t, p.Selection().Selected())
	require.Equal(t, 4, p.Selection().Len())
}

func TestPipeline_SelectProcessedRow(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)
	ctx := context.Background()

	grouped := ViewConfig{GroupColumn: "city", SortColumn: "amount", SortDirection: Descending, PageSize: 3, Page: 1}
	result, err := p.Run(ctx, grouped)
	require.NoError(t, err)
	require.Equal(t, [][]int{{4, 1}, {6}, {}, {}}, result.PaginatedIndices())

	// Linz shows a single row, row 1 would spill into Vienna on page 2
	require.False(t, p.SelectProcessedRow(result, true, 1, 1))
	require.Empty(t, p.Selection().Selected())
	require.True(t, p.SelectProcessedRow(result, true, 0, 1))
	require.Equal(t, []int{6}, p.Selection().Selected())
	p.Selection().Clear()

	result, err = p.Run(ctx, ViewConfig{PageSize: 3, Page: 1})
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}}, result.PaginatedIndices())
	require.False(t, p.SelectProcessedRow(result, true, 5, 0), "row on a later page")
	require.Empty(t, p.Selection().Selected())

	// Both selection paths resolve every visible row to the same master index
	for page := 1; page <= 3; page++ {
		grouped.Page = page
		result, err := p.Run(ctx, grouped)
		require.NoError(t, err)
		for g, indices := range result.PaginatedIndices() {
			for r, index := range indices {
				p.Selection().Clear()
				require.True(t, p.SelectProcessedRow(result, true, r, g))
				require.Equal(t, []int{index}, p.Selection().Selected(), "page %d group %d row %d", page, g, r)
			}
		}
	}
}

func TestPipeline_Domains(t *testing.T) {
	schema, rows := pipelineTestData()
	p := NewPipeline(schema, rows)

	require.Equal(t, []string{"Graz", "Linz", "Vienna"}, p.Domains()["city"].Values)
	require.Equal(t, Domain{Min: 1, Max: 9, Numeric: true, Count: 7}, p.Domains()["amount"])

	p.SetData(rows[:2])
	require.Equal(t, []string{"Graz", "Vienna"}, p.Domains()["city"].Values)
}

func TestPipeline_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	schema, rows := pipelineTestData()

	p := NewPipeline(schema, rows, WithLogger(logger))
	require.Contains(t, buf.String(), "selection reset")

	_, err := p.Run(context.Background(), ViewConfig{})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "pipeline run")
	require.Contains(t, buf.String(), "filtered=7")
}

func TestPipeline_NilSchema(t *testing.T) {
	rows := []Row{{"x": "b"}, {"x": "a"}}
	p := NewPipeline(nil, rows)

	result, err := p.Run(context.Background(), ViewConfig{Search: "a", SortColumn: "x"})
	require.NoError(t, err)
	require.Equal(t, [][]int{{1}}, result.PaginatedIndices())
}
