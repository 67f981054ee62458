// Package redisearch reads the catalog and records from RediSearch / Valkey
// search indexes over hashes.
package redisearch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/mapvista/internal/db"
	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
	"github.com/kailas-cloud/mapvista/internal/source"
)

// Compile-time check: Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Defaults for Config.
const (
	DefaultMaxRecords = 100
	DefaultMetaPrefix = "mapvista:meta:"
)

// Catalog metadata hash fields.
const (
	metaDisplayName = "display_name"
	metaCategory    = "category"
	metaLastUpdated = "last_updated"
	metaHasGeo      = "has_geo"
	metaColumnTypes = "column_types"
)

// Config tunes how indexes are read.
type Config struct {
	MaxRecords int
	MetaPrefix string
	// NumericFields are parsed as numbers even when the index schema does
	// not declare them NUMERIC (coordinates stored but not indexed).
	NumericFields []string
	// SortBy picks which MaxRecords documents are read from large indexes.
	// It must be SORTABLE in every index; empty keeps FT.SEARCH order.
	SortBy   string
	SortDesc bool
}

// Source implements source.Source over FT._LIST / FT.INFO / FT.SEARCH.
type Source struct {
	store      Store
	maxRecords int
	metaPrefix string
	numeric    map[string]bool
	sortBy     string
	sortDesc   bool
}

// New creates a Source.
func New(store Store, cfg Config) *Source {
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DefaultMaxRecords
	}
	if cfg.MetaPrefix == "" {
		cfg.MetaPrefix = DefaultMetaPrefix
	}
	numeric := make(map[string]bool, len(cfg.NumericFields))
	for _, f := range cfg.NumericFields {
		numeric[f] = true
	}
	return &Source{
		store:      store,
		maxRecords: cfg.MaxRecords,
		metaPrefix: cfg.MetaPrefix,
		numeric:    numeric,
		sortBy:     cfg.SortBy,
		sortDesc:   cfg.SortDesc,
	}
}

// FetchIndexes lists FT indexes with their FT.INFO counters and stored metadata.
func (s *Source) FetchIndexes(ctx context.Context) ([]catalog.Descriptor, error) {
	names, err := s.store.ListIndexes(ctx)
	if err != nil {
		return nil, unavailable("list indexes", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	metaKeys := make([]string, len(names))
	for i, n := range names {
		metaKeys[i] = s.metaPrefix + n
	}
	metas, err := s.store.HGetAllMulti(ctx, metaKeys)
	if err != nil {
		return nil, unavailable("read index metadata", err)
	}

	out := make([]catalog.Descriptor, 0, len(names))
	for i, name := range names {
		info, err := s.store.IndexInfo(ctx, name)
		if errors.Is(err, db.ErrIndexNotFound) {
			continue // dropped between FT._LIST and FT.INFO
		}
		if err != nil {
			return nil, unavailable("index info "+name, err)
		}
		var meta map[string]string
		if i < len(metas) {
			meta = metas[i]
		}
		d, err := catalog.New(name, catalog.Params{
			DisplayName:   meta[metaDisplayName],
			DocumentCount: info.NumDocs,
			SizeLabel:     FormatSize(info.SizeMB),
			Health:        catalog.HealthGreen,
			Status:        "open",
			LastUpdated:   meta[metaLastUpdated],
			Category:      meta[metaCategory],
			HasGeoData:    meta[metaHasGeo] == "true" || hasCoordinates(info),
		})
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// FetchRecords reads up to MaxRecords hashes of index in FT.SEARCH order.
func (s *Source) FetchRecords(ctx context.Context, index string) (source.RecordSet, error) {
	info, err := s.store.IndexInfo(ctx, index)
	if errors.Is(err, db.ErrIndexNotFound) {
		return source.RecordSet{}, fmt.Errorf("index %q: %w", index, domain.ErrIndexNotFound)
	}
	if err != nil {
		return source.RecordSet{}, unavailable("index info "+index, err)
	}

	res, err := s.store.Search(ctx, db.SearchQuery{
		Index:  index,
		Limit:  s.maxRecords,
		SortBy: s.sortBy,
		Desc:   s.sortDesc,
	})
	if errors.Is(err, db.ErrIndexNotFound) {
		return source.RecordSet{}, fmt.Errorf("index %q: %w", index, domain.ErrIndexNotFound)
	}
	if err != nil {
		return source.RecordSet{}, unavailable("search "+index, err)
	}

	numeric := info.NumericAttributes()
	for f := range s.numeric {
		numeric[f] = true
	}

	records := make([]record.Record, 0, len(res.Entries))
	for _, e := range res.Entries {
		records = append(records, toRecord(e, info.Prefixes, numeric))
	}

	ann, err := s.annotations(ctx, index)
	if err != nil {
		return source.RecordSet{}, err
	}
	return source.RecordSet{Records: records, Annotations: ann}, nil
}

// Ping checks connectivity.
func (s *Source) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Source) annotations(ctx context.Context, index string) (table.Annotations, error) {
	metas, err := s.store.HGetAllMulti(ctx, []string{s.metaPrefix + index})
	if err != nil {
		return nil, unavailable("read index metadata", err)
	}
	if len(metas) == 0 {
		return nil, nil
	}
	return ParseColumnTypes(metas[0][metaColumnTypes]), nil
}

func toRecord(e db.SearchEntry, prefixes []string, numeric map[string]bool) record.Record {
	b := record.NewBuilder(keyID(e.Key, prefixes))
	for _, f := range e.Fields {
		b.Set(f.Name, value.ParseField(f.Value, numeric[f.Name]))
	}
	return b.Build()
}

// keyID strips the longest matching index prefix from a hash key.
func keyID(key string, prefixes []string) string {
	best := ""
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) && len(p) > len(best) {
			best = p
		}
	}
	if id := strings.TrimPrefix(key, best); id != "" {
		return id
	}
	return key
}

func hasCoordinates(info *db.IndexInfo) bool {
	n := info.NumericAttributes()
	return n["latitude"] && n["longitude"]
}

// FormatSize renders FT.INFO megabytes the way _cat/indices labels sizes.
func FormatSize(mb float64) string {
	switch {
	case mb <= 0:
		return ""
	case mb >= 1024:
		return fmt.Sprintf("%.1f GB", mb/1024)
	case mb >= 1:
		return fmt.Sprintf("%.1f MB", mb)
	default:
		return fmt.Sprintf("%.0f KB", mb*1024)
	}
}

// ParseColumnTypes reads "field=type,field=type". Unknown types are dropped.
func ParseColumnTypes(s string) table.Annotations {
	if s == "" {
		return nil
	}
	out := make(table.Annotations)
	for _, part := range strings.Split(s, ",") {
		name, typ, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			continue
		}
		if t := table.ColumnType(typ); table.ValidColumnType(t) {
			out[name] = t
		}
	}
	return out
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrSourceUnavailable, err)
}
