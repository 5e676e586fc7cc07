package datatable

// View is a read-only table of cells addressed by row and column.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	// Cell returns the unwrapped value of the cell
	// or nil for undefined cells and out of range coordinates.
	Cell(row, col int) any
}

var (
	_ View = new(DatasetView)
	_ View = new(PageView)
)

// DatasetView is a View of a master dataset.
type DatasetView struct {
	Tit  string
	Cols Columns
	Rows []Row
}

func (view *DatasetView) Title() string     { return view.Tit }
func (view *DatasetView) Columns() []string { return view.Cols.Titles() }
func (view *DatasetView) NumRows() int      { return len(view.Rows) }

func (view *DatasetView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	val, _ := view.Rows[row].Get(view.Cols[col].Key)
	return val
}

// PageView is a View of the rows of a Page,
// concatenating the groups of the page in order.
// Empty groups contribute no rows.
type PageView struct {
	Tit  string
	Cols Columns
	Page Page
}

func (view *PageView) Title() string     { return view.Tit }
func (view *PageView) Columns() []string { return view.Cols.Titles() }
func (view *PageView) NumRows() int      { return view.Page.NumRows() }

func (view *PageView) Cell(row, col int) any {
	r, _, ok := view.Locate(row)
	if !ok || col < 0 || col >= len(view.Cols) {
		return nil
	}
	val, _ := r.Row.Get(view.Cols[col].Key)
	return val
}

// Locate returns the IndexedRow at the view row
// and the index of the page group it belongs to.
func (view *PageView) Locate(row int) (r IndexedRow, group int, ok bool) {
	if row < 0 {
		return IndexedRow{}, -1, false
	}
	rowTop := 0
	for g, pg := range view.Page.Groups {
		rowBottom := rowTop + len(pg.Rows)
		if row < rowBottom {
			return pg.Rows[row-rowTop], g, true
		}
		rowTop = rowBottom
	}
	return IndexedRow{}, -1, false
}

// FormattedRows returns the cells of a View formatted
// with the schema, one string slice per row.
func FormattedRows(view View, schema *Schema) [][]string {
	cols := view.Columns()
	keys := schema.Keys()
	rows := make([][]string, view.NumRows())
	for r := range rows {
		strs := make([]string, len(cols))
		for c := range cols {
			var key string
			if c < len(keys) {
				key = keys[c]
			}
			val := view.Cell(r, c)
			if val == nil {
				val = Envelope{}
			}
			strs[c] = schema.FormatCell(key, val)
		}
		rows[r] = strs
	}
	return rows
}
