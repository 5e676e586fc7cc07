package datatable

// Column describes a column of the table.
type Column struct {
	Key   string     `json:"key"             yaml:"key"`
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
	Type  ColumnType `json:"type"            yaml:"type"`

	// Formatter overrides the registered formatter of Type if not nil
	Formatter Formatter `json:"-" yaml:"-"`
}

// DisplayTitle returns Title or Key if Title is empty.
func (c Column) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}

// Columns is an ordered list of column definitions.
type Columns []Column

// Keys returns the keys of the columns in order.
func (cols Columns) Keys() []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

// Titles returns the DisplayTitle of every column in order.
func (cols Columns) Titles() []string {
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.DisplayTitle()
	}
	return titles
}

// Find returns the column with the passed key.
func (cols Columns) Find(key string) (Column, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Schema binds the columns of a table to a TypeRegistry
// and is passed explicitly to every pipeline stage.
type Schema struct {
	Columns  Columns
	Registry *TypeRegistry

	index map[string]int
}

// NewSchema returns a Schema for the passed columns.
// A nil registry uses DefaultTypeRegistry.
func NewSchema(registry *TypeRegistry, columns ...Column) *Schema {
	if registry == nil {
		registry = DefaultTypeRegistry()
	}
	s := &Schema{
		Columns:  columns,
		Registry: registry,
		index:    make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, exists := s.index[c.Key]; !exists {
			s.index[c.Key] = i
		}
	}
	return s
}

// Keys returns the column keys of the schema
// or nil for a nil schema.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	return s.Columns.Keys()
}

// Column returns the column with the passed key.
func (s *Schema) Column(key string) (Column, bool) {
	if s == nil {
		return Column{}, false
	}
	if s.index != nil {
		i, ok := s.index[key]
		if !ok {
			return Column{}, false
		}
		return s.Columns[i], true
	}
	return s.Columns.Find(key)
}

// Type returns the type of the column with the passed key.
// Unknown columns are String columns.
func (s *Schema) Type(key string) ColumnType {
	c, _ := s.Column(key)
	return c.Type
}

// FormatCell formats the raw cell value of the column with the passed key.
func (s *Schema) FormatCell(key string, raw any) string {
	c, _ := s.Column(key)
	var registry *TypeRegistry
	if s != nil {
		registry = s.Registry
	}
	return registry.Format(c.Type, c.Formatter, raw)
}

// FormatRowCell formats the cell of the row, treating
// an absent key like an envelope without value.
func (s *Schema) FormatRowCell(row Row, key string) string {
	raw, ok := row.Cell(key)
	if !ok {
		raw = Envelope{}
	}
	return s.FormatCell(key, raw)
}
