package redisearch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/db"
	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
	"github.com/kailas-cloud/mapvista/internal/source"
)

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Indexes   int
	Documents int
}

// Seeder copies every index of a source into hashes plus an FT index each.
type Seeder struct {
	store      SeedStore
	metaPrefix string
	logger     *zap.Logger
}

// NewSeeder creates a Seeder writing catalog metadata under metaPrefix.
func NewSeeder(store SeedStore, metaPrefix string, logger *zap.Logger) *Seeder {
	if metaPrefix == "" {
		metaPrefix = DefaultMetaPrefix
	}
	return &Seeder{store: store, metaPrefix: metaPrefix, logger: logger}
}

// Seed copies src. Existing indexes are kept and their documents overwritten.
func (s *Seeder) Seed(ctx context.Context, src source.Source) (SeedResult, error) {
	var res SeedResult

	indexes, err := src.FetchIndexes(ctx)
	if err != nil {
		return res, fmt.Errorf("seed: list source indexes: %w", err)
	}

	for _, d := range indexes {
		rs, err := src.FetchRecords(ctx, d.ID())
		if err != nil {
			return res, fmt.Errorf("seed: fetch %s: %w", d.ID(), err)
		}
		n, err := s.seedIndex(ctx, d, rs)
		if err != nil {
			return res, err
		}
		res.Indexes++
		res.Documents += n
		s.logger.Info("Index seeded",
			zap.String("index", d.ID()),
			zap.Int("documents", n),
		)
	}
	return res, nil
}

func (s *Seeder) seedIndex(ctx context.Context, d catalog.Descriptor, rs source.RecordSet) (int, error) {
	cols := table.InferColumns(rs.Records, rs.Annotations)
	prefix := d.ID() + ":"

	def, err := IndexDefinition(d.ID(), prefix, cols)
	if err != nil {
		return 0, fmt.Errorf("seed: index %s: %w", d.ID(), err)
	}
	s.logger.Debug("Creating index", zap.Stringer("schema", def))
	if err := s.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return 0, fmt.Errorf("seed: create index %s: %w", d.ID(), err)
	}

	items := make([]db.HashSetItem, 0, len(rs.Records)+1)
	items = append(items, db.HashSetItem{Key: s.metaPrefix + d.ID(), Fields: metaFields(d, cols)})
	for _, r := range rs.Records {
		fields := hashFields(r)
		if len(fields) == 0 {
			continue
		}
		items = append(items, db.HashSetItem{Key: prefix + r.ID(), Fields: fields})
	}

	if err := s.store.HSetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("seed: write %s: %w", d.ID(), err)
	}
	return len(items) - 1, nil
}

// IndexDefinition maps table columns onto an FT schema: numeric columns
// become sortable NUMERIC, status columns TAG, dates sortable TEXT (ISO
// strings order chronologically) and the rest TEXT. An index without
// columns gets a single "name" TEXT field so that it still shows up in
// FT._LIST.
func IndexDefinition(name, prefix string, cols []table.Column) (*db.IndexDefinition, error) {
	b := db.NewIndex(name).Prefix(prefix)
	for _, c := range cols {
		switch c.Type {
		case table.ColumnNumber, table.ColumnCoordinate, table.ColumnCurrency:
			b.Numeric(c.Name)
		case table.ColumnStatus:
			b.Tag(c.Name)
		case table.ColumnDate:
			b.Text(c.Name).Sortable()
		default:
			b.Text(c.Name)
		}
	}
	if b.Len() == 0 {
		b.Text("name")
	}
	return b.Build() //nolint:wrapcheck // caller adds context
}

// hashFields keeps source order, including the id field, and skips nulls.
func hashFields(r record.Record) []db.Field {
	fields := make([]db.Field, 0, r.Len())
	r.Range(func(k string, v value.Value) bool {
		if v.Kind() != value.Null && !v.IsUndefined() {
			fields = append(fields, db.Field{Name: k, Value: v.String()})
		}
		return true
	})
	return fields
}

func metaFields(d catalog.Descriptor, cols []table.Column) []db.Field {
	fields := []db.Field{
		{Name: metaDisplayName, Value: d.Name()},
		{Name: metaCategory, Value: d.Category()},
		{Name: metaLastUpdated, Value: d.LastUpdated()},
		{Name: metaHasGeo, Value: strconv.FormatBool(d.HasGeoData())},
	}
	if enc := FormatColumnTypes(cols); enc != "" {
		fields = append(fields, db.Field{Name: metaColumnTypes, Value: enc})
	}
	return fields
}

// FormatColumnTypes encodes columns as "field=type,..." sorted by field.
func FormatColumnTypes(cols []table.Column) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, c.Name+"="+string(c.Type))
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}
