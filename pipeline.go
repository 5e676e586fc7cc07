package datatable

import (
	"context"
	"io"
	"log/slog"
)

// Pipeline recomputes filter, group, sort and paginate
// over a master dataset for every ViewConfig passed to Run.
// It owns the selection of the master rows.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	schema    *Schema
	rows      []Row
	selection *Selection
	domains   map[string]Domain
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline in NewPipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger of the pipeline.
// The default logger discards all output.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline returns a Pipeline for the master dataset rows.
// A nil schema is treated as a schema without columns
// where every column is a String column.
func NewPipeline(schema *Schema, rows []Row, options ...PipelineOption) *Pipeline {
	if schema == nil {
		schema = NewSchema(nil)
	}
	p := &Pipeline{
		schema:    schema,
		selection: NewSelection(0),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(p)
	}
	p.SetData(rows)
	return p
}

func (p *Pipeline) Schema() *Schema { return p.schema }

// Rows returns the master dataset.
func (p *Pipeline) Rows() []Row { return p.rows }

// Selection returns the selection of the master rows.
// It is kept across runs and reset by SetData
// if the number of rows changed.
func (p *Pipeline) Selection() *Selection { return p.selection }

// Domains returns the domain of every non String column
// of the current master dataset.
func (p *Pipeline) Domains() map[string]Domain { return p.domains }

// SetData replaces the master dataset.
// The selection is reset if the number of rows changed.
func (p *Pipeline) SetData(rows []Row) {
	p.rows = rows
	p.domains = ExtractDomains(rows, p.schema)
	if p.selection.Resize(len(rows)) {
		p.logger.Debug("selection reset", "rows", len(rows))
	}
}

// Result is the output of one pipeline run.
type Result struct {
	// Config is the ViewConfig of the run with
	// the page clamped to the available rows.
	Config   ViewConfig
	Filtered FilterResult
	Grouping Grouping
	Sorted   []Group
	Page     Page
}

// GroupTitles returns the display titles of all groups.
func (r *Result) GroupTitles() []string { return r.Grouping.Titles() }

// FilteredIndices returns the master indices of the filtered rows in master order.
func (r *Result) FilteredIndices() []int { return r.Filtered.Indices() }

// GroupedIndices returns the master indices per group in filtered order.
func (r *Result) GroupedIndices() [][]int { return r.Grouping.Indices() }

// ProcessedIndices returns the master indices per group
// in sorted order before pagination.
func (r *Result) ProcessedIndices() [][]int {
	indices := make([][]int, len(r.Sorted))
	for i, g := range r.Sorted {
		indices[i] = g.Indices()
	}
	return indices
}

func (r *Result) PaginatedData() [][]Row       { return r.Page.Data() }
func (r *Result) PaginatedIndices() [][]int    { return r.Page.Indices() }
func (r *Result) PaginatedSelection() [][]bool { return r.Page.Selection() }

// Run applies filter, group, sort and paginate
// to the master dataset and returns the visible page.
func (p *Pipeline) Run(ctx context.Context, config ViewConfig) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	filtered := Filter(p.rows, FilterOptions{
		Schema:      p.schema,
		Filters:     config.Filters,
		TimeFilter:  config.TimeFilter,
		Search:      config.Search,
		HideFilters: config.HideFilters,
	})
	grouping := GroupRows(filtered.Rows, p.schema, config.GroupColumn)
	sorted := SortGroups(grouping.Groups, SortOptions{
		Schema:      p.schema,
		GroupColumn: grouping.Column,
		Column:      config.SortColumn,
		Direction:   config.SortDirection,
	})

	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = filtered.Len()
		config.Page = 1
	} else {
		config.Page = GetNextPage(pageSize, config.Page, filtered.Len())
	}
	pageStart, pageEnd := PageWindow(pageSize, config.Page)

	processed := make([][]int, len(sorted))
	for i, g := range sorted {
		processed[i] = g.Indices()
	}
	page := PaginateGroups(sorted, p.selection.Project(processed), pageSize, pageStart, pageEnd)

	p.logger.DebugContext(ctx, "pipeline run",
		"rows", len(p.rows),
		"filtered", filtered.Len(),
		"groups", len(grouping.Groups),
		"page", config.Page,
		"page_rows", page.NumRows(),
	)

	return &Result{
		Config:   config,
		Filtered: filtered,
		Grouping: grouping,
		Sorted:   sorted,
		Page:     page,
	}, nil
}

// RefreshSelection updates the page selection of a result
// after the selection was changed.
func (p *Pipeline) RefreshSelection(result *Result) {
	projected := p.selection.Project(result.PaginatedIndices())
	for i := range result.Page.Groups {
		result.Page.Groups[i].Selection = projected[i]
	}
}

// SelectAll sets the selection of all filtered rows of the result.
func (p *Pipeline) SelectAll(result *Result, selected bool) {
	p.selection.SelectAll(selected, result.FilteredIndices())
	p.RefreshSelection(result)
}

// SelectRow sets the selection of the row at relativeRow
// within the page group groupIndex of the result.
// Out of range coordinates are ignored and return false.
func (p *Pipeline) SelectRow(result *Result, selected bool, relativeRow, groupIndex int) bool {
	index, ok := p.selection.SelectRow(selected, relativeRow, groupIndex, result.PaginatedIndices())
	if !ok {
		p.logger.Debug("ignoring out of range row selection",
			"relative_row", relativeRow,
			"group", groupIndex,
			"index", index,
		)
		return false
	}
	p.RefreshSelection(result)
	return true
}

// SelectProcessedRow sets the selection of a page relative row
// by resolving it through the processed indices of the result
// with GetProcessedRowInd.
// Out of range coordinates are ignored and return false.
func (p *Pipeline) SelectProcessedRow(result *Result, selected bool, relativeRow, groupIndex int) bool {
	// Only rows visible on the page can be addressed
	if _, ok := ResolvePageRow(relativeRow, groupIndex, result.PaginatedIndices()); !ok {
		p.logger.Debug("ignoring out of range processed row selection",
			"relative_row", relativeRow,
			"group", groupIndex,
		)
		return false
	}
	pageSize := result.Config.PageSize
	if pageSize <= 0 {
		pageSize = result.Filtered.Len()
	}
	processed := result.ProcessedIndices()
	pos := GetProcessedRowInd(ProcessedRowOptions{
		RelativeInd:      relativeRow,
		GroupInd:         groupIndex,
		CurrentPage:      result.Config.Page,
		CurrentPageSize:  pageSize,
		CurrentGroup:     result.Config.GroupColumn,
		ProcessedIndices: processed,
	})
	index, ok := ProcessedMasterIndex(pos, processed)
	if !ok || !p.selection.Set(index, selected) {
		p.logger.Debug("ignoring out of range processed row selection",
			"relative_row", relativeRow,
			"group", groupIndex,
			"position", pos,
		)
		return false
	}
	p.RefreshSelection(result)
	return true
}
