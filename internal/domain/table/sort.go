package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

// Direction is the sort direction.
type Direction string

// Direction values.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" (any case); empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(s)) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", fmt.Errorf("sort direction must be %q or %q, got %q", Ascending, Descending, s)
	}
}

// SortSpec is the single active sort. The zero value means unsorted.
type SortSpec struct {
	field     string
	direction Direction
}

// NewSortSpec creates a sort on field. An empty field yields the unsorted spec.
func NewSortSpec(field string, dir Direction) SortSpec {
	if field == "" {
		return SortSpec{}
	}
	if dir != Descending {
		dir = Ascending
	}
	return SortSpec{field: field, direction: dir}
}

// Field returns the sorted field, empty when unsorted.
func (s SortSpec) Field() string { return s.field }

// Direction returns the sort direction.
func (s SortSpec) Direction() Direction { return s.direction }

// IsZero reports whether no sort is active.
func (s SortSpec) IsZero() bool { return s.field == "" }

// Toggle returns the spec after a click on field's header: the same field
// flips direction, another field starts ascending.
func (s SortSpec) Toggle(field string) SortSpec {
	if field == "" {
		return s
	}
	if s.field == field {
		if s.direction == Ascending {
			return SortSpec{field: field, direction: Descending}
		}
		return SortSpec{field: field, direction: Ascending}
	}
	return SortSpec{field: field, direction: Ascending}
}

// Locale is the language the dashboard collates text and formats numbers in.
var Locale = language.English

// Sorter orders records by one field. Numbers compare numerically, everything
// else (dates included) by the lower-cased text under the Locale collator.
// The sort is stable: ties keep their input order.
// Safe for concurrent use.
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
}

// NewSorter creates a Sorter with the Locale collation table.
func NewSorter() *Sorter {
	return &Sorter{collator: collate.New(Locale)}
}

// Sort returns a new slice ordered by spec. The zero spec returns a copy.
func (s *Sorter) Sort(records []record.Record, spec SortSpec) []record.Record {
	out := slices.Clone(records)
	if spec.IsZero() {
		return out
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(out, func(a, b record.Record) int {
		c := s.compare(a.Get(spec.field), b.Get(spec.field))
		if spec.direction == Descending {
			return -c
		}
		return c
	})
	return out
}

func (s *Sorter) compare(a, b value.Value) int {
	if af, ok := a.Float(); ok {
		if bf, ok := b.Float(); ok {
			return cmp.Compare(af, bf)
		}
	}
	return s.collator.CompareString(strings.ToLower(a.String()), strings.ToLower(b.String()))
}
