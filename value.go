package datatable

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Row maps column keys to cell values.
// A cell value is a primitive, nil, an Envelope or a *Envelope.
// A key that is not present in the row is an undefined cell.
type Row map[string]any

// Envelope wraps a cell value with optional color and metadata.
// A nil Value means the envelope carries no value.
type Envelope struct {
	Value    any    `json:"value,omitempty"    yaml:"value,omitempty"`
	Color    string `json:"color,omitempty"    yaml:"color,omitempty"`
	Metadata any    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Cell returns the raw cell value including any Envelope
// and if the key is present in the row.
func (r Row) Cell(key string) (val any, ok bool) {
	val, ok = r[key]
	return val, ok
}

// Get returns the unwrapped value of the cell
// and false if the value is undefined.
func (r Row) Get(key string) (val any, defined bool) {
	raw, ok := r[key]
	if !ok {
		return nil, false
	}
	return Unwrap(raw)
}

// IsEmptyOrMissing returns true if the cell with the passed key
// is undefined, empty or missing.
func (r Row) IsEmptyOrMissing(key string) bool {
	raw, ok := r[key]
	return !ok || IsEmptyOrMissing(raw)
}

// Unwrap returns the value of an Envelope or the passed value as is.
// defined is false for envelopes without a value.
func Unwrap(v any) (val any, defined bool) {
	switch e := v.(type) {
	case Envelope:
		return e.Value, e.Value != nil
	case *Envelope:
		if e == nil {
			return nil, true
		}
		return e.Value, e.Value != nil
	}
	return v, true
}

// IsEmpty returns true if the unwrapped value is undefined.
// Note that nil is not empty but missing.
func IsEmpty(v any) bool {
	_, defined := Unwrap(v)
	return !defined
}

// IsMissingValue returns true for nil
// and for envelopes carrying metadata without a value.
func IsMissingValue(v any) bool {
	switch e := v.(type) {
	case nil:
		return true
	case Envelope:
		return e.Value == nil && e.Metadata != nil
	case *Envelope:
		return e == nil || (e.Value == nil && e.Metadata != nil)
	}
	return ValueIsNil(v)
}

// IsEmptyOrMissing returns true if v is either
// an empty value or a missing value.
func IsEmptyOrMissing(v any) bool {
	return IsEmpty(v) || IsMissingValue(v)
}

// ValueIsNil returns true if the passed value
// is nil or a nil pointer, slice, map or interface.
func ValueIsNil(v any) bool {
	if v == nil {
		return true
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return val.IsNil()
	}
	return false
}

// AsNumber converts numeric values and numeric strings to float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
