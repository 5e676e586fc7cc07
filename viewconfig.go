package datatable

import (
	"fmt"
	"strconv"
	"strings"
)

// ViewConfig is the configuration of one pipeline run,
// everything the controls of a table can change.
type ViewConfig struct {
	// Filters maps column keys to their active filter.
	Filters map[string]FilterValue `json:"filters,omitempty" yaml:"filters,omitempty"`

	// HideFilters disables Filters without discarding them.
	HideFilters bool `json:"hideFilters,omitempty" yaml:"hideFilters,omitempty"`

	TimeFilter *TimeFilter `json:"timeFilter,omitempty" yaml:"timeFilter,omitempty"`

	Search string `json:"search,omitempty" yaml:"search,omitempty"`

	// GroupColumn is the key of the column to group by,
	// empty or "None" for no grouping.
	GroupColumn string `json:"groupColumn,omitempty" yaml:"groupColumn,omitempty"`

	// SortColumn is the key of the column to sort by,
	// empty for the filtered order.
	SortColumn string `json:"sortColumn,omitempty" yaml:"sortColumn,omitempty"`

	// SortDirection defaults to Ascending if zero.
	SortDirection SortDirection `json:"sortDirection,omitempty" yaml:"sortDirection,omitempty"`

	// PageSize of zero or less disables pagination.
	PageSize int `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`

	// Page is the 1-based page number, zero means the first page.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}

// Validate returns an error for an invalid sort direction or page.
// Unknown columns are not an error, they are treated as String columns.
func (c *ViewConfig) Validate() error {
	if c.SortDirection != 0 && !c.SortDirection.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSortDirection, int(c.SortDirection))
	}
	if c.Page < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, c.Page)
	}
	return nil
}

// WithFilter returns a copy of the config with the
// filter of the column key replaced.
func (c ViewConfig) WithFilter(key string, filter FilterValue) ViewConfig {
	filters := make(map[string]FilterValue, len(c.Filters)+1)
	for k, v := range c.Filters {
		filters[k] = v
	}
	filters[key] = filter
	c.Filters = filters
	return c
}

// WithoutFilter returns a copy of the config
// without a filter for the column key.
func (c ViewConfig) WithoutFilter(key string) ViewConfig {
	filters := make(map[string]FilterValue, len(c.Filters))
	for k, v := range c.Filters {
		if k != key {
			filters[k] = v
		}
	}
	c.Filters = filters
	return c
}

// WithSort returns a copy of the config sorted by column.
func (c ViewConfig) WithSort(column string, direction SortDirection) ViewConfig {
	c.SortColumn = column
	c.SortDirection = direction
	return c
}

// MarshalText implements encoding.TextMarshaler
func (d SortDirection) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSortDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
// accepting "asc", "ascending", "1", "desc", "descending" and "-1".
func (d *SortDirection) UnmarshalText(text []byte) error {
	switch s := strings.ToLower(strings.TrimSpace(string(text))); s {
	case "", "asc", "ascending":
		*d = Ascending
	case "desc", "descending":
		*d = Descending
	default:
		i, err := strconv.Atoi(s)
		if err != nil || !SortDirection(i).Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidSortDirection, text)
		}
		*d = SortDirection(i)
	}
	return nil
}
