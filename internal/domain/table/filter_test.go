package table

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/mapvista/internal/domain/record"
)

func TestFilter_StatusActive(t *testing.T) {
	rs := []record.Record{
		rec("u1", "status", "active"),
		rec("u2", "status", "offline"),
	}

	got := Filter(rs, []Clause{mustClause("status", "active")})
	if !reflect.DeepEqual(ids(got), []string{"u1"}) {
		t.Fatalf("Filter() = %v, want [u1]", ids(got))
	}
}

func TestFilter_EmptyClausesReturnsInput(t *testing.T) {
	rs := []record.Record{rec("c"), rec("a"), rec("b")}

	got := Filter(rs, nil)
	if !reflect.DeepEqual(ids(got), []string{"c", "a", "b"}) {
		t.Fatalf("Filter() = %v, want input order", ids(got))
	}

	got[0] = rec("mutated")
	if rs[0].ID() != "c" {
		t.Error("Filter must return a new slice")
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	rs := []record.Record{
		rec("1", "city", "New York"),
		rec("2", "city", "Newark"),
		rec("3", "city", "London"),
	}

	got := Filter(rs, []Clause{mustClause("city", "NEW")})
	if !reflect.DeepEqual(ids(got), []string{"1", "2"}) {
		t.Fatalf("Filter() = %v, want [1 2]", ids(got))
	}
}

func TestFilter_ClausesAreANDed(t *testing.T) {
	rs := []record.Record{
		rec("1", "status", "active", "country", "USA"),
		rec("2", "status", "active", "country", "UK"),
		rec("3", "status", "offline", "country", "USA"),
	}

	got := Filter(rs, []Clause{
		mustClause("status", "active"),
		mustClause("country", "us"),
	})
	if !reflect.DeepEqual(ids(got), []string{"1"}) {
		t.Fatalf("Filter() = %v, want [1]", ids(got))
	}
}

func TestFilter_NumbersMatchTheirTextForm(t *testing.T) {
	rs := []record.Record{
		rec("1", "customers", 89),
		rec("2", "customers", 156),
		rec("3", "revenue", 15420.5),
	}

	got := Filter(rs, []Clause{mustClause("customers", "15")})
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Fatalf("Filter() = %v, want [2]", ids(got))
	}

	got = Filter(rs, []Clause{mustClause("revenue", "420.5")})
	if !reflect.DeepEqual(ids(got), []string{"3"}) {
		t.Fatalf("Filter() = %v, want [3]", ids(got))
	}
}

func TestFilter_MissingFieldReadsUndefined(t *testing.T) {
	rs := []record.Record{
		rec("1", "status", "active"),
		rec("2"),
		rec("3", "status", nil),
	}

	got := Filter(rs, []Clause{mustClause("status", "undef")})
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Fatalf("Filter() = %v, want [2]", ids(got))
	}

	got = Filter(rs, []Clause{mustClause("status", "null")})
	if !reflect.DeepEqual(ids(got), []string{"3"}) {
		t.Fatalf("Filter() = %v, want [3]", ids(got))
	}
}

func TestFilter_OutputIsSubset(t *testing.T) {
	rs := []record.Record{
		rec("1", "name", "Alpha", "n", 1),
		rec("2", "name", "Beta", "n", 2),
		rec("3", "name", "Gamma", "n", 3),
		rec("4", "name", "alphabet", "n", 4),
	}
	clauseSets := [][]Clause{
		nil,
		{mustClause("name", "a")},
		{mustClause("name", "alpha")},
		{mustClause("name", "a"), mustClause("n", "3")},
		{mustClause("missing", "x")},
	}

	input := make(map[string]record.Record, len(rs))
	for _, r := range rs {
		input[r.ID()] = r
	}

	for _, cs := range clauseSets {
		got := Filter(rs, cs)
		if len(got) > len(rs) {
			t.Fatalf("output longer than input for %v", cs)
		}
		last := -1
		for _, r := range got {
			if _, ok := input[r.ID()]; !ok {
				t.Fatalf("fabricated record %q for %v", r.ID(), cs)
			}
			pos := indexOf(rs, r.ID())
			if pos <= last {
				t.Fatalf("order not preserved for %v", cs)
			}
			last = pos
			if !reflect.DeepEqual(r.Keys(), input[r.ID()].Keys()) {
				t.Fatalf("fields changed for %q", r.ID())
			}
		}
	}
}

func indexOf(rs []record.Record, id string) int {
	for i, r := range rs {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

func TestSearch_AnyField(t *testing.T) {
	rs := []record.Record{
		rec("user_001", "name", "John Doe", "city", "New York"),
		rec("user_002", "name", "Jane Smith", "city", "London"),
		rec("user_003", "name", "Carlos Rodriguez", "city", "Paris"),
	}

	if got := ids(Search(rs, "LONDON")); !reflect.DeepEqual(got, []string{"user_002"}) {
		t.Errorf("Search(LONDON) = %v", got)
	}
	if got := ids(Search(rs, "user_00")); len(got) != 3 {
		t.Errorf("Search by id prefix = %v, want all", got)
	}
	if got := ids(Search(rs, "")); len(got) != 3 {
		t.Errorf("empty search = %v, want all", got)
	}
	if got := ids(Search(rs, "tokyo")); len(got) != 0 {
		t.Errorf("Search(tokyo) = %v, want none", got)
	}
}

func TestNewClause_Validation(t *testing.T) {
	if _, err := NewClause("", "x"); err == nil {
		t.Error("expected error for empty field")
	}
	if _, err := NewClause("status", ""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestParseClause(t *testing.T) {
	c, err := ParseClause("lastSeen:2024-01-20T10:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Field() != "lastSeen" || c.Substring() != "2024-01-20T10:30" {
		t.Errorf("ParseClause = %q / %q", c.Field(), c.Substring())
	}
	if c.String() != "lastSeen:2024-01-20T10:30" {
		t.Errorf("String() = %q", c.String())
	}

	if _, err := ParseClause("nocolon"); err == nil {
		t.Error("expected error without colon")
	}
	if _, err := ParseClause("status:"); err == nil {
		t.Error("expected error for empty value")
	}
}
