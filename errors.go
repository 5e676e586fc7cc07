package datatable

import "errors"

var (
	// ErrInvalidColumnType is returned when parsing an unknown column type name.
	ErrInvalidColumnType = errors.New("invalid column type")

	// ErrInvalidSortDirection is returned for sort directions other than 1 and -1.
	ErrInvalidSortDirection = errors.New("invalid sort direction")

	// ErrInvalidPage is returned for negative page numbers.
	// Page 0 selects the first page.
	ErrInvalidPage = errors.New("invalid page")

	// ErrUnknownColumn is returned when a column definition
	// has a key that is not part of the header row
	// of a dataset read from strings.
	ErrUnknownColumn = errors.New("unknown column")
)
