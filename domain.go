package datatable

import (
	"encoding/json"
	"math"
	"slices"
)

// Domain describes the values of a column
// used to populate the choices of a filter control.
//
// Domains marshal to JSON as {"domain": [...]} with the sorted values
// of Nominal and Boolean columns or [min, max] of Number columns.
// A Number column without numeric values marshals as {"domain": []}.
type Domain struct {
	// Values holds the sorted distinct formatted values
	// of Nominal and Boolean columns.
	Values []string

	// Min and Max are set for Number columns
	// that contain at least one numeric value.
	Min float64
	Max float64

	// Numeric is true for the domain of a Number column.
	Numeric bool

	// Count is the number of cells that contributed to the domain.
	Count int
}

// MarshalJSON implements encoding/json.Marshaler
func (d Domain) MarshalJSON() ([]byte, error) {
	var domain any
	switch {
	case d.Numeric && d.Count > 0:
		domain = []float64{d.Min, d.Max}
	case d.Numeric:
		domain = []float64{}
	case d.Values == nil:
		domain = []string{}
	default:
		domain = d.Values
	}
	return json.Marshal(struct {
		Domain any `json:"domain"`
	}{domain})
}

// ExtractDomains scans rows once and returns the Domain of every
// Nominal, Boolean and Number column of the schema.
// Empty and missing cells don't contribute to a domain.
func ExtractDomains(rows []Row, schema *Schema) map[string]Domain {
	if schema == nil {
		return map[string]Domain{}
	}
	type accumulator struct {
		col    Column
		seen   map[string]struct{}
		values []string
		min    float64
		max    float64
		count  int
	}
	var accs []*accumulator
	for _, col := range schema.Columns {
		switch {
		case col.Type.IsCategorical():
			accs = append(accs, &accumulator{col: col, seen: make(map[string]struct{})})
		case col.Type == Number:
			accs = append(accs, &accumulator{col: col, min: math.Inf(1), max: math.Inf(-1)})
		}
	}

	for _, row := range rows {
		for _, acc := range accs {
			raw, ok := row.Cell(acc.col.Key)
			if !ok || IsEmptyOrMissing(raw) {
				continue
			}
			if acc.col.Type == Number {
				val, _ := Unwrap(raw)
				n, ok := AsNumber(val)
				if !ok {
					continue
				}
				acc.min = math.Min(acc.min, n)
				acc.max = math.Max(acc.max, n)
				acc.count++
				continue
			}
			acc.count++
			str := schema.FormatCell(acc.col.Key, raw)
			if _, exists := acc.seen[str]; !exists {
				acc.seen[str] = struct{}{}
				acc.values = append(acc.values, str)
			}
		}
	}

	domains := make(map[string]Domain, len(accs))
	for _, acc := range accs {
		if acc.col.Type == Number {
			if acc.count > 0 {
				domains[acc.col.Key] = Domain{Min: acc.min, Max: acc.max, Numeric: true, Count: acc.count}
			} else {
				domains[acc.col.Key] = Domain{Numeric: true}
			}
			continue
		}
		values := acc.values
		if values == nil {
			values = []string{}
		}
		slices.Sort(values)
		domains[acc.col.Key] = Domain{Values: values, Count: acc.count}
	}
	return domains
}
