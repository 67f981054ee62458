package table

import (
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

// rec builds a record from alternating key/value pairs.
// Go values map to tags: string, float64/int, bool, nil (null).
func rec(id string, kv ...any) record.Record {
	b := record.NewBuilder(id)
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			b.Set(key, value.ParseText(v))
		case float64:
			b.Set(key, value.OfNumber(v))
		case int:
			b.Set(key, value.OfNumber(float64(v)))
		case bool:
			b.Set(key, value.OfBool(v))
		case nil:
			b.Set(key, value.OfNull())
		}
	}
	return b.Build()
}

func ids(rs []record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID()
	}
	return out
}

func mustClause(field, sub string) Clause {
	c, err := NewClause(field, sub)
	if err != nil {
		panic(err)
	}
	return c
}
