package datatable

import "time"

// DefaultDateTimeLayout is used by the DefaultTypeRegistry
// to format DateTime cells.
const DefaultDateTimeLayout = time.RFC3339

// DefaultTypeRegistry returns a new TypeRegistry with
// the default formatters and empty values of all column types.
func DefaultTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		Formatters: map[ColumnType]Formatter{
			Nominal:  SprintFormatter{},
			String:   SprintFormatter{},
			DateTime: LayoutFormatter(DefaultDateTimeLayout),
			Number:   NumberFormatter{},
			Boolean:  BoolFormatter{},
			Array:    JSONFormatter{},
			Object:   JSONFormatter{},
		},
		EmptyValues: map[ColumnType]any{
			Nominal:  "",
			String:   "",
			DateTime: "",
			Number:   "",
			Boolean:  "",
			Array:    []any{},
			Object:   map[string]any{},
		},
	}
}

// TypeRegistry supplies the default Formatter and the
// default empty value for every ColumnType.
//
// A nil TypeRegistry is valid and formats all values with SprintFormatter.
type TypeRegistry struct {
	Formatters  map[ColumnType]Formatter
	EmptyValues map[ColumnType]any
}

// Formatter returns the registered Formatter for the column type
// or SprintFormatter if none is registered.
func (r *TypeRegistry) Formatter(t ColumnType) Formatter {
	if r != nil {
		if f, ok := r.Formatters[t]; ok && f != nil {
			return f
		}
	}
	return SprintFormatter{}
}

// EmptyValue returns the value that empty or missing
// cells of the column type are formatted as.
func (r *TypeRegistry) EmptyValue(t ColumnType) any {
	if r != nil {
		if v, ok := r.EmptyValues[t]; ok {
			return v
		}
	}
	return ""
}

// Format formats a raw cell value of the passed column type.
// An explicit formatter takes precedence over the registered one.
// Formatter errors fall back to SprintFormatter.
func (r *TypeRegistry) Format(t ColumnType, explicit Formatter, raw any) string {
	val, defined := Unwrap(raw)
	if !defined || IsMissingValue(raw) {
		val = r.EmptyValue(t)
	}
	f := explicit
	if f == nil {
		f = r.Formatter(t)
	}
	if str, err := f.Format(val); err == nil {
		return str
	}
	str, _ := SprintFormatter{}.Format(val)
	return str
}

func (r *TypeRegistry) cloneOrNew() *TypeRegistry {
	if r == nil {
		return new(TypeRegistry)
	}
	c := new(TypeRegistry)
	if len(r.Formatters) > 0 {
		c.Formatters = make(map[ColumnType]Formatter, len(r.Formatters))
		for key, val := range r.Formatters {
			c.Formatters[key] = val
		}
	}
	if len(r.EmptyValues) > 0 {
		c.EmptyValues = make(map[ColumnType]any, len(r.EmptyValues))
		for key, val := range r.EmptyValues {
			c.EmptyValues[key] = val
		}
	}
	return c
}

// SetFormatter registers the formatter for a column type.
// Use WithFormatter to modify a shared registry.
func (r *TypeRegistry) SetFormatter(t ColumnType, f Formatter) {
	if r.Formatters == nil {
		r.Formatters = make(map[ColumnType]Formatter)
	}
	r.Formatters[t] = f
}

// WithFormatter returns a copy of the registry
// with the formatter for the column type replaced.
func (r *TypeRegistry) WithFormatter(t ColumnType, f Formatter) *TypeRegistry {
	mod := r.cloneOrNew()
	mod.SetFormatter(t, f)
	return mod
}

// SetEmptyValue registers the value that empty or
// missing cells of the column type are formatted as.
func (r *TypeRegistry) SetEmptyValue(t ColumnType, val any) {
	if r.EmptyValues == nil {
		r.EmptyValues = make(map[ColumnType]any)
	}
	r.EmptyValues[t] = val
}

// WithEmptyValue returns a copy of the registry
// with the empty value for the column type replaced.
func (r *TypeRegistry) WithEmptyValue(t ColumnType, val any) *TypeRegistry {
	mod := r.cloneOrNew()
	mod.SetEmptyValue(t, val)
	return mod
}
