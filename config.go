package datatable

import (
	"context"
	"errors"
	"fmt"

	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"
)

// TableConfig describes a table: its columns and
// the initial ViewConfig of the pipeline.
//
// Example YAML:
//
//	title: Orders
//	columns:
//	  - key: customer
//	    type: Nominal
//	  - key: amount
//	    type: Number
//	  - key: created
//	    type: DateTime
//	view:
//	  groupColumn: customer
//	  sortColumn: amount
//	  sortDirection: desc
//	  pageSize: 25
type TableConfig struct {
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Columns Columns    `json:"columns"         yaml:"columns"`
	View    ViewConfig `json:"view"            yaml:"view"`
}

// ParseConfig parses and validates a YAML TableConfig.
func ParseConfig(data []byte) (*TableConfig, error) {
	config := new(TableConfig)
	err := yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("can't parse table config: %w", err)
	}
	err = config.Validate()
	if err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfig reads and parses a YAML TableConfig file.
func LoadConfig(ctx context.Context, file fs.FileReader) (*TableConfig, error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	return config, nil
}

// Validate checks that column keys are unique and not empty
// and that the view configuration is valid.
func (c *TableConfig) Validate() error {
	if c == nil {
		return errors.New("<nil> TableConfig")
	}
	seen := make(map[string]struct{}, len(c.Columns))
	for i, col := range c.Columns {
		if col.Key == "" {
			return fmt.Errorf("column %d has no key", i)
		}
		if _, exists := seen[col.Key]; exists {
			return fmt.Errorf("duplicate column key %q", col.Key)
		}
		seen[col.Key] = struct{}{}
	}
	return c.View.Validate()
}

// Schema returns a Schema of the configured columns.
// A nil registry uses DefaultTypeRegistry.
func (c *TableConfig) Schema(registry *TypeRegistry) *Schema {
	return NewSchema(registry, c.Columns...)
}
