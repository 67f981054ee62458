package table

import (
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

// ColumnType is the rendering annotation of a column.
type ColumnType string

// Column types.
const (
	ColumnText       ColumnType = "text"
	ColumnNumber     ColumnType = "number"
	ColumnDate       ColumnType = "date"
	ColumnBoolean    ColumnType = "boolean"
	ColumnCoordinate ColumnType = "coordinate"
	ColumnStatus     ColumnType = "status"
	ColumnCurrency   ColumnType = "currency"
)

// ValidColumnType reports whether t is a known column type.
func ValidColumnType(t ColumnType) bool {
	switch t {
	case ColumnText, ColumnNumber, ColumnDate, ColumnBoolean, ColumnCoordinate, ColumnStatus, ColumnCurrency:
		return true
	}
	return false
}

// Column is a table column with its type decided at load time.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Annotations are explicit per-field column types supplied with the data.
// They win over inference.
type Annotations map[string]ColumnType

// InferColumns derives the columns of a record set: every field except the
// id, in order of first appearance. Types come from annotations, then from
// coordFields (numeric fields only), then from the kinds of the non-null values.
func InferColumns(records []record.Record, ann Annotations, coordFields ...string) []Column {
	var order []string
	kinds := make(map[string]map[value.Kind]struct{})

	for _, r := range records {
		r.Range(func(k string, v value.Value) bool {
			if k == record.IDField {
				return true
			}
			seen, ok := kinds[k]
			if !ok {
				seen = make(map[value.Kind]struct{})
				kinds[k] = seen
				order = append(order, k)
			}
			if v.Kind() != value.Null {
				seen[v.Kind()] = struct{}{}
			}
			return true
		})
	}

	coord := make(map[string]bool, len(coordFields))
	for _, f := range coordFields {
		coord[f] = true
	}

	cols := make([]Column, len(order))
	for i, name := range order {
		cols[i] = Column{Name: name, Type: columnType(name, kinds[name], ann, coord)}
	}
	return cols
}

func columnType(name string, seen map[value.Kind]struct{}, ann Annotations, coord map[string]bool) ColumnType {
	if t, ok := ann[name]; ok && ValidColumnType(t) {
		return t
	}
	if len(seen) != 1 {
		return ColumnText
	}
	for k := range seen {
		switch k {
		case value.Number:
			if coord[name] {
				return ColumnCoordinate
			}
			return ColumnNumber
		case value.Date:
			return ColumnDate
		case value.Bool:
			return ColumnBoolean
		}
	}
	return ColumnText
}
