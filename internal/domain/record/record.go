// Package record defines the open-schema record fetched from an index.
package record

import (
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

// IDField is the field holding the record identifier.
const IDField = "id"

// Record is an immutable row with an ordered, open set of fields.
type Record struct {
	keys   []string
	fields map[string]value.Value
}

// Builder assembles a Record preserving field insertion order.
// Setting an existing key replaces its value but keeps its position.
type Builder struct {
	keys   []string
	fields map[string]value.Value
}

// NewBuilder starts a record whose first field is the identifier.
func NewBuilder(id string) *Builder {
	b := &Builder{fields: make(map[string]value.Value)}
	b.Set(IDField, value.OfString(id))
	return b
}

// Set adds or replaces a field.
func (b *Builder) Set(key string, v value.Value) *Builder {
	if _, ok := b.fields[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.fields[key] = v
	return b
}

// Build returns the record. The builder must not be reused.
func (b *Builder) Build() Record {
	return Record{keys: b.keys, fields: b.fields}
}

// ID returns the string form of the id field.
func (r Record) ID() string {
	return r.fields[IDField].String()
}

// Get returns the field value; absent fields return the undefined value.
func (r Record) Get(key string) value.Value {
	return r.fields[key]
}

// Lookup returns the field value and whether it is present.
func (r Record) Lookup(key string) (value.Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Keys returns the field names in source order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Range calls fn for each field in source order until fn returns false.
func (r Record) Range(fn func(key string, v value.Value) bool) {
	for _, k := range r.keys {
		if !fn(k, r.fields[k]) {
			return
		}
	}
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// Coordinates returns the numeric pair stored under latKey/lngKey.
func (r Record) Coordinates(latKey, lngKey string) (lat, lng float64, ok bool) {
	lat, okLat := r.fields[latKey].Float()
	lng, okLng := r.fields[lngKey].Float()
	return lat, lng, okLat && okLng
}
