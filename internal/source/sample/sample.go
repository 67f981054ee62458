// Package sample serves the built-in demo catalog without any backend.
package sample

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
	"github.com/kailas-cloud/mapvista/internal/source"
)

// Compile-time check: Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source is an in-memory, read-only catalog.
type Source struct {
	indexes []catalog.Descriptor
	records map[string]source.RecordSet
}

// New returns the demo catalog: four indexes, three of which carry records.
func New() *Source {
	s := &Source{records: make(map[string]source.RecordSet)}
	for _, d := range demoIndexes {
		desc, err := catalog.New(d.id, d.params)
		if err != nil {
			panic(fmt.Sprintf("sample index %q: %v", d.id, err))
		}
		s.indexes = append(s.indexes, desc)
	}
	for id, rows := range demoRecords {
		s.records[id] = source.RecordSet{Records: rows, Annotations: demoAnnotations}
	}
	return s
}

// FetchIndexes returns the demo descriptors.
func (s *Source) FetchIndexes(_ context.Context) ([]catalog.Descriptor, error) {
	out := make([]catalog.Descriptor, len(s.indexes))
	copy(out, s.indexes)
	return out, nil
}

// FetchRecords returns the demo records of index. Listed indexes without
// records yield an empty set.
func (s *Source) FetchRecords(ctx context.Context, index string) (source.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return source.RecordSet{}, fmt.Errorf("fetch %s: %w", index, err)
	}
	if rs, ok := s.records[index]; ok {
		return source.RecordSet{
			Records:     append([]record.Record(nil), rs.Records...),
			Annotations: rs.Annotations,
		}, nil
	}
	for _, d := range s.indexes {
		if d.ID() == index {
			return source.RecordSet{Annotations: demoAnnotations}, nil
		}
	}
	return source.RecordSet{}, fmt.Errorf("index %q: %w", index, domain.ErrIndexNotFound)
}

// Ping always succeeds.
func (s *Source) Ping(_ context.Context) error { return nil }

var demoAnnotations = table.Annotations{
	"revenue": table.ColumnCurrency,
	"status":  table.ColumnStatus,
}

type demoIndex struct {
	id     string
	params catalog.Params
}

var demoIndexes = []demoIndex{
	{"user-locations", catalog.Params{
		DisplayName: "user-locations-2024", DocumentCount: 15420, SizeLabel: "2.1 GB",
		Health: catalog.HealthGreen, Status: "open", LastUpdated: "2024-01-20",
		Category: "Users", HasGeoData: true,
	}},
	{"delivery-tracking", catalog.Params{
		DisplayName: "delivery-tracking", DocumentCount: 8930, SizeLabel: "1.5 GB",
		Health: catalog.HealthGreen, Status: "open", LastUpdated: "2024-01-19",
		Category: "Logistics", HasGeoData: true,
	}},
	{"store-analytics", catalog.Params{
		DisplayName: "store-analytics", DocumentCount: 25680, SizeLabel: "3.8 GB",
		Health: catalog.HealthYellow, Status: "open", LastUpdated: "2024-01-18",
		Category: "Retail", HasGeoData: true,
	}},
	{"weather-data", catalog.Params{
		DisplayName: "weather-stations", DocumentCount: 5240, SizeLabel: "850 MB",
		Health: catalog.HealthGreen, Status: "open", LastUpdated: "2024-01-17",
		Category: "Environmental", HasGeoData: true,
	}},
}

var demoRecords = map[string][]record.Record{
	"user-locations": {
		row("user_001", "userId", "USR001", "name", "John Doe", "latitude", 40.7128, "longitude", -74.0060,
			"city", "New York", "country", "USA", "lastSeen", "2024-01-20T10:30:00Z", "status", "active"),
		row("user_002", "userId", "USR002", "name", "Jane Smith", "latitude", 51.5074, "longitude", -0.1278,
			"city", "London", "country", "UK", "lastSeen", "2024-01-20T09:15:00Z", "status", "active"),
		row("user_003", "userId", "USR003", "name", "Carlos Rodriguez", "latitude", 48.8566, "longitude", 2.3522,
			"city", "Paris", "country", "France", "lastSeen", "2024-01-19T18:45:00Z", "status", "offline"),
	},
	"delivery-tracking": {
		row("del_001", "trackingId", "TRK12345", "latitude", 37.7749, "longitude", -122.4194,
			"address", "123 Market St, San Francisco, CA", "status", "in_transit",
			"estimatedDelivery", "2024-01-21T14:00:00Z", "packageType", "Electronics"),
		row("del_002", "trackingId", "TRK12346", "latitude", 34.0522, "longitude", -118.2437,
			"address", "456 Sunset Blvd, Los Angeles, CA", "status", "delivered",
			"estimatedDelivery", "2024-01-20T16:30:00Z", "packageType", "Clothing"),
	},
	"store-analytics": {
		row("store_001", "storeId", "ST001", "storeName", "Downtown Electronics", "latitude", 40.7589, "longitude", -73.9851,
			"revenue", 15420.50, "customers", 89.0, "date", "2024-01-20", "category", "Electronics"),
		row("store_002", "storeId", "ST002", "storeName", "Fashion Central", "latitude", 40.7505, "longitude", -73.9934,
			"revenue", 23180.75, "customers", 156.0, "date", "2024-01-20", "category", "Fashion"),
	},
}

// row builds a record from alternating key/value pairs of strings and float64s.
func row(id string, kv ...any) record.Record {
	b := record.NewBuilder(id)
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			b.Set(key, value.ParseText(v))
		case float64:
			b.Set(key, value.OfNumber(v))
		default:
			panic(fmt.Sprintf("sample field %s: unsupported %T", key, v))
		}
	}
	return b.Build()
}
