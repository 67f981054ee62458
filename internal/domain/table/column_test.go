package table

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/mapvista/internal/domain/record"
)

func TestInferColumns_UnionInFirstSeenOrder(t *testing.T) {
	rs := []record.Record{
		rec("1", "name", "A", "city", "Paris"),
		rec("2", "name", "B", "country", "France"),
		rec("3", "zip", "75001", "city", "Lyon"),
	}

	cols := InferColumns(rs, nil)
	var names []string
	for _, c := range cols {
		names = append(names, c.Name)
	}
	if !reflect.DeepEqual(names, []string{"name", "city", "country", "zip"}) {
		t.Fatalf("columns = %v", names)
	}
}

func TestInferColumns_Types(t *testing.T) {
	rs := []record.Record{
		rec("1", "latitude", 40.7, "revenue", 10, "lastSeen", "2024-01-20T10:30:00Z", "active", true, "mixed", 1, "note", nil),
		rec("2", "latitude", 51.5, "revenue", 20, "lastSeen", "2024-01-19", "active", false, "mixed", "one", "note", "hi"),
	}

	cols := InferColumns(rs, Annotations{"revenue": ColumnCurrency, "bogus": "nope"}, "latitude")
	got := make(map[string]ColumnType, len(cols))
	for _, c := range cols {
		got[c.Name] = c.Type
	}

	want := map[string]ColumnType{
		"latitude": ColumnCoordinate,
		"revenue":  ColumnCurrency,
		"lastSeen": ColumnDate,
		"active":   ColumnBoolean,
		"mixed":    ColumnText,
		"note":     ColumnText,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
}

func TestInferColumns_InvalidAnnotationIgnored(t *testing.T) {
	rs := []record.Record{rec("1", "n", 3)}

	cols := InferColumns(rs, Annotations{"n": "weird"})
	if len(cols) != 1 || cols[0].Type != ColumnNumber {
		t.Fatalf("cols = %+v, want number", cols)
	}
}

func TestInferColumns_Empty(t *testing.T) {
	if cols := InferColumns(nil, nil); len(cols) != 0 {
		t.Fatalf("cols = %v, want none", cols)
	}
}
