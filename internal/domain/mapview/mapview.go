// Package mapview projects records onto map points and computes viewports.
package mapview

import (
	"strings"

	"github.com/kailas-cloud/mapvista/internal/domain/geo"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
)

// Default field mapping.
const (
	DefaultLatField = "latitude"
	DefaultLngField = "longitude"
)

// DefaultLabelFields are tried in order when labelling a point.
var DefaultLabelFields = []string{"name", "storeName", "trackingId"}

// Mapping names the record fields a point is read from.
type Mapping struct {
	LatField    string
	LngField    string
	LabelFields []string
}

// DefaultMapping returns the latitude/longitude mapping with the default label fields.
func DefaultMapping() Mapping {
	return Mapping{
		LatField:    DefaultLatField,
		LngField:    DefaultLngField,
		LabelFields: append([]string(nil), DefaultLabelFields...),
	}
}

func (m Mapping) withDefaults() Mapping {
	if m.LatField == "" {
		m.LatField = DefaultLatField
	}
	if m.LngField == "" {
		m.LngField = DefaultLngField
	}
	if len(m.LabelFields) == 0 {
		m.LabelFields = DefaultLabelFields
	}
	return m
}

// Point is a geolocated record.
type Point struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// LatLng returns the point position.
func (p Point) LatLng() geo.LatLng { return geo.LatLng{Lat: p.Lat, Lng: p.Lng} }

// Projection is the result of projecting a record set.
type Projection struct {
	Points   []Point `json:"points"`
	Excluded int     `json:"excluded"`
}

// Project maps every record with valid numeric coordinates to a point.
// Records without them are skipped and counted in Excluded.
func Project(records []record.Record, m Mapping) Projection {
	m = m.withDefaults()
	p := Projection{Points: make([]Point, 0, len(records))}

	for _, r := range records {
		pt, ok := ProjectOne(r, m)
		if !ok {
			p.Excluded++
			continue
		}
		p.Points = append(p.Points, pt)
	}
	return p
}

// ProjectOne maps a single record, reporting false when it has no valid position.
func ProjectOne(r record.Record, m Mapping) (Point, bool) {
	m = m.withDefaults()
	lat, lng, ok := r.Coordinates(m.LatField, m.LngField)
	if !ok || !geo.ValidateCoordinates(lat, lng) {
		return Point{}, false
	}
	return Point{ID: r.ID(), Lat: lat, Lng: lng, Label: label(r, m.LabelFields)}, true
}

func label(r record.Record, fields []string) string {
	for _, f := range fields {
		v, ok := r.Lookup(f)
		if !ok || v.IsUndefined() {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" && s != "null" {
			return s
		}
	}
	return r.ID()
}
