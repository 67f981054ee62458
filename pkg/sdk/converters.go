package mapvista

import (
	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

func indexFromDomain(d domcat.Descriptor) Index {
	return Index{
		ID:          d.ID(),
		Name:        d.Name(),
		DocCount:    d.DocumentCount(),
		Size:        d.SizeLabel(),
		Health:      Health(d.Health()),
		Status:      d.Status(),
		LastUpdated: d.LastUpdated(),
		Category:    d.Category(),
		HasGeoData:  d.HasGeoData(),
	}
}

func tableFromDomain(v table.View) Table {
	out := Table{
		Columns: make([]Column, len(v.Columns)),
		Rows:    make([]Record, len(v.Rows)),
		Shown:   v.Shown,
		Total:   v.Total,
	}
	for i, c := range v.Columns {
		out.Columns[i] = Column{Name: c.Name, Type: ColumnType(c.Type)}
	}
	for i, r := range v.Rows {
		out.Rows[i] = recordFromDomain(r)
	}
	return out
}

func recordFromDomain(r record.Record) Record {
	out := Record{ID: r.ID(), Fields: make([]Field, 0, r.Len())}
	r.Range(func(k string, v value.Value) bool {
		out.Fields = append(out.Fields, Field{Name: k, Value: valueToAny(v)})
		return true
	})
	return out
}

func valueToAny(v value.Value) any {
	switch v.Kind() {
	case value.Number:
		f, _ := v.Float()
		return f
	case value.Bool:
		b, _ := v.BoolValue()
		return b
	case value.Date:
		t, _ := v.Time()
		return t
	case value.String:
		return v.String()
	default:
		return nil
	}
}
