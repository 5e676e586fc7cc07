package datatable

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ohler55/ojg/oj"
)

// Formatter converts an unwrapped cell value to the string
// used for comparison, search and domain extraction.
//
// Format returns errors.ErrUnsupported if the formatter
// doesn't support the type of the passed value,
// in which case callers fall back to SprintFormatter.
type Formatter interface {
	Format(val any) (string, error)
}

// FormatterFunc is a function type that implements the Formatter interface.
//
// Example:
//
//	var upper Formatter = FormatterFunc(func(v any) (string, error) {
//	    s, ok := v.(string)
//	    if !ok {
//	        return "", errors.ErrUnsupported
//	    }
//	    return strings.ToUpper(s), nil
//	})
type FormatterFunc func(val any) (string, error)

// Format implements the Formatter interface by calling the function itself.
func (f FormatterFunc) Format(val any) (string, error) {
	return f(val)
}

// SprintFormatter formats any value using fmt.Sprint
// and nil as empty string.
// It never returns an error.
type SprintFormatter struct{}

func (SprintFormatter) Format(val any) (string, error) {
	if val == nil {
		return "", nil
	}
	return fmt.Sprint(val), nil
}

// UnsupportedFormatter always returns errors.ErrUnsupported.
type UnsupportedFormatter struct{}

func (UnsupportedFormatter) Format(val any) (string, error) {
	return "", errors.ErrUnsupported
}

// NumberFormatter formats numeric values with the
// shortest representation that round-trips, like 1.5 or 42.
// Non-numeric values are not supported.
type NumberFormatter struct{}

func (NumberFormatter) Format(val any) (string, error) {
	if s, ok := val.(string); ok {
		return s, nil
	}
	f, ok := AsNumber(val)
	if !ok {
		return "", errors.ErrUnsupported
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// BoolFormatter formats booleans as "true" or "false".
type BoolFormatter struct{}

func (BoolFormatter) Format(val any) (string, error) {
	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return v, nil
	}
	return "", errors.ErrUnsupported
}

// LayoutFormatter formats time.Time values
// using its string value as layout for time.Time.Format.
type LayoutFormatter string

func (layout LayoutFormatter) Format(val any) (string, error) {
	switch v := val.(type) {
	case time.Time:
		return v.Format(string(layout)), nil
	case *time.Time:
		if v == nil {
			return "", nil
		}
		return v.Format(string(layout)), nil
	case string:
		return v, nil
	}
	return "", errors.ErrUnsupported
}

// JSONFormatter formats values as JSON with sorted object keys.
type JSONFormatter struct{}

func (JSONFormatter) Format(val any) (string, error) {
	return stringifyJSON(val)
}

func stringifyJSON(val any) (string, error) {
	data, err := oj.Marshal(val, &oj.Options{Sort: true})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
