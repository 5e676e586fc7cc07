package datatable

import (
	"fmt"
	"strings"
)

// ColumnType is the semantic type of a column.
// It selects the default Formatter and empty value
// from a TypeRegistry and controls how filters
// and sorting treat the cells of the column.
type ColumnType int

const (
	// String is the zero value so that columns
	// without a registered type behave String-like.
	String ColumnType = iota
	Nominal
	DateTime
	Number
	Boolean
	Array
	Object
)

var columnTypeNames = [...]string{
	String:   "String",
	Nominal:  "Nominal",
	DateTime: "DateTime",
	Number:   "Number",
	Boolean:  "Boolean",
	Array:    "Array",
	Object:   "Object",
}

// ColumnTypes returns all valid column types.
func ColumnTypes() []ColumnType {
	return []ColumnType{Nominal, String, DateTime, Number, Boolean, Array, Object}
}

// ParseColumnType parses the case-insensitive name of a ColumnType.
func ParseColumnType(name string) (ColumnType, error) {
	for t, n := range columnTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ColumnType(t), nil
		}
	}
	return String, fmt.Errorf("%w: %q", ErrInvalidColumnType, name)
}

// Valid returns true if t is one of the defined column types.
func (t ColumnType) Valid() bool {
	return t >= String && t <= Object
}

func (t ColumnType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
	return columnTypeNames[t]
}

// IsCategorical returns true for types that are
// filtered by set membership instead of substring matching.
func (t ColumnType) IsCategorical() bool {
	return t == Nominal || t == Boolean
}

// MarshalText implements encoding.TextMarshaler
func (t ColumnType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumnType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
