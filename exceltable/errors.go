package exceltable

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptySheet is returned for a sheet
	// without a header row after removing empty rows.
	ErrEmptySheet = errors.New("empty sheet")
)

// ErrSheetNotExist is returned by excelize for an unknown sheet name.
//
//	var sheetErr exceltable.ErrSheetNotExist
//	if errors.As(err, &sheetErr) {
//	    fmt.Printf("Sheet not found: %s\n", sheetErr.SheetName)
//	}
type ErrSheetNotExist = excelize.ErrSheetNotExist
