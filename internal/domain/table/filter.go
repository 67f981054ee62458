package table

import (
	"strings"

	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

// Filter keeps the records whose field value contains every clause substring,
// case-insensitively. An absent field is matched as the text "undefined".
// The result is a new slice; input order is preserved.
func Filter(records []record.Record, clauses []Clause) []record.Record {
	out := make([]record.Record, 0, len(records))
	if len(clauses) == 0 {
		return append(out, records...)
	}

	needles := make([]string, len(clauses))
	for i, c := range clauses {
		needles[i] = strings.ToLower(c.substring)
	}

	for _, r := range records {
		if matchesAll(r, clauses, needles) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r record.Record, clauses []Clause, needles []string) bool {
	for i, c := range clauses {
		if !strings.Contains(strings.ToLower(r.Get(c.field).String()), needles[i]) {
			return false
		}
	}
	return true
}

// Search keeps the records where any field value contains term, case-insensitively.
// An empty term keeps everything.
func Search(records []record.Record, term string) []record.Record {
	out := make([]record.Record, 0, len(records))
	if term == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(term)
	for _, r := range records {
		hit := false
		r.Range(func(_ string, v value.Value) bool {
			hit = strings.Contains(strings.ToLower(v.String()), needle)
			return !hit
		})
		if hit {
			out = append(out, r)
		}
	}
	return out
}
