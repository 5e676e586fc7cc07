// Package exceltable reads sheets of Excel files (.xlsx, .xlsm, .xltm, .xltx)
// as master datasets of a datatable.Pipeline.
//
// The first non empty row of a sheet is used as header row
// naming the column keys of the dataset.
//
// Example:
//
//	rows, cols, err := exceltable.ReadDataset(ctx, fs.File("orders.xlsx"), "", nil, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline := datatable.NewPipeline(datatable.NewSchema(nil, cols...), rows)
package exceltable

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-datatable"
)

// ReadDataset reads a sheet of an Excel file and converts it
// to a master dataset of the passed columns
// using datatable.NewDatasetFromStrings.
//
// An empty sheet name reads the first sheet.
// If columns is empty then every header column becomes a String column.
// If rawCellStrings is true then cell values are read without
// applying the number format of the cells.
func ReadDataset(ctx context.Context, file fs.FileReader, sheet string, columns datatable.Columns, rawCellStrings bool) (rows []datatable.Row, cols datatable.Columns, err error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
		}
	}
	strs, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, nil, err
	}
	strs = datatable.RemoveEmptyStringRows(strs)
	if len(strs) == 0 {
		return nil, nil, fmt.Errorf("%s sheet %q: %w", file.Name(), sheet, ErrEmptySheet)
	}
	return datatable.NewDatasetFromStrings(columns, strs[0], strs[1:])
}

// SheetNames returns the names of all sheets of an Excel file.
func SheetNames(ctx context.Context, file fs.FileReader) (names []string, err error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return f.GetSheetList(), nil
}
