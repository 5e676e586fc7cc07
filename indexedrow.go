package datatable

// IndexedRow pairs a row with its master index,
// the row's position in the untransformed dataset.
// Every pipeline stage moves IndexedRow values so that
// a row can never be separated from its master index.
type IndexedRow struct {
	Index int
	Row   Row
}

// IndexRows pairs every row with its position in rows.
func IndexRows(rows []Row) []IndexedRow {
	indexed := make([]IndexedRow, len(rows))
	for i, row := range rows {
		indexed[i] = IndexedRow{Index: i, Row: row}
	}
	return indexed
}

// RowsOf returns the rows of the passed IndexedRow slice.
func RowsOf(rows []IndexedRow) []Row {
	data := make([]Row, len(rows))
	for i, r := range rows {
		data[i] = r.Row
	}
	return data
}

// IndicesOf returns the master indices of the passed IndexedRow slice.
func IndicesOf(rows []IndexedRow) []int {
	indices := make([]int, len(rows))
	for i, r := range rows {
		indices[i] = r.Index
	}
	return indices
}

// FlattenIndices concatenates the per group index slices in group order.
func FlattenIndices(groups [][]int) []int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	flat := make([]int, 0, n)
	for _, g := range groups {
		flat = append(flat, g...)
	}
	return flat
}
