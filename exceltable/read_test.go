package exceltable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-datatable"
)

func testWorkbook(t *testing.T) fs.MemFile {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	cells := map[string]any{
		"A1": "customer", "B1": "amount", "C1": "note",
		"A2": "ACME", "B2": 20, "C2": "first",
		"A3": "Initech", "B3": "n/a",
	}
	for cell, val := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, val))
	}
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return fs.MemFile{FileName: "orders.xlsx", FileData: buf.Bytes()}
}

func TestReadDataset(t *testing.T) {
	file := testWorkbook(t)
	columns := datatable.Columns{
		{Key: "customer", Type: datatable.Nominal},
		{Key: "amount", Type: datatable.Number},
	}

	for _, sheet := range []string{"", "Sheet1"} {
		rows, cols, err := ReadDataset(context.Background(), file, sheet, columns, false)
		require.NoError(t, err)
		require.Equal(t, columns, cols)
		require.Equal(t, []datatable.Row{
			{"customer": "ACME", "amount": 20.0},
			{"customer": "Initech", "amount": "n/a"},
		}, rows)
	}
}

func TestReadDataset_HeaderColumns(t *testing.T) {
	rows, cols, err := ReadDataset(context.Background(), testWorkbook(t), "", nil, true)
	require.NoError(t, err)
	require.Equal(t, []string{"customer", "amount", "note"}, cols.Keys())
	require.Len(t, rows, 2)
	require.Equal(t, "first", rows[0]["note"])
	_, ok := rows[1]["note"]
	require.False(t, ok, "short rows have undefined cells")
}

func TestReadDataset_Errors(t *testing.T) {
	ctx := context.Background()
	file := testWorkbook(t)

	_, _, err := ReadDataset(ctx, file, "Empty", nil, false)
	require.ErrorIs(t, err, ErrEmptySheet)

	_, _, err = ReadDataset(ctx, file, "Missing", nil, false)
	var sheetErr ErrSheetNotExist
	require.ErrorAs(t, err, &sheetErr)
	require.Equal(t, "Missing", sheetErr.SheetName)

	_, _, err = ReadDataset(ctx, fs.MemFile{FileName: "broken.xlsx", FileData: []byte("not a zip")}, "", nil, false)
	require.Error(t, err)
}

func TestSheetNames(t *testing.T) {
	names, err := SheetNames(context.Background(), testWorkbook(t))
	require.NoError(t, err)
	require.Equal(t, []string{"Sheet1", "Empty"}, names)
}
