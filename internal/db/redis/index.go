package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/mapvista/internal/db"
)

// CreateIndex creates an FT index from the given definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// DropIndex removes an FT index by name. Documents are kept.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isUnknownIndex(err) {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isUnknownIndex(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// ListIndexes returns the names of all FT indexes.
func (s *Store) ListIndexes(ctx context.Context) ([]string, error) {
	cmd := s.b().Arbitrary("FT._LIST").Build()
	names, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpListIndexes, Err: err}
	}
	return names, nil
}

// IndexInfo returns document count, size and schema of an index.
func (s *Store) IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isUnknownIndex(err) {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	info := parseIndexInfo(raw)
	if info.Name == "" {
		info.Name = name
	}
	return info, nil
}

func isUnknownIndex(err error) bool {
	// Redis says "Unknown index name", Valkey search says "Index ... not found".
	return isRedisErr(err, "unknown index name") || isRedisErr(err, "not found")
}

// sizeKeys are the FT.INFO memory counters summed into SizeMB.
var sizeKeys = map[string]bool{
	"inverted_sz_mb":          true,
	"offset_vectors_sz_mb":    true,
	"doc_table_size_mb":       true,
	"sortable_values_size_mb": true,
	"key_table_size_mb":       true,
}

// parseIndexInfo reads the flat key/value reply of FT.INFO.
func parseIndexInfo(raw []rueidis.RedisMessage) *db.IndexInfo {
	info := &db.IndexInfo{}
	for i := 0; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		val := raw[i+1]
		switch {
		case key == "index_name":
			info.Name, _ = val.ToString()
		case key == "num_docs":
			info.NumDocs = asInt(val)
		case key == "index_definition":
			info.Prefixes = parsePrefixes(val)
		case key == "attributes" || key == "fields":
			info.Attributes = parseAttributes(val)
		case sizeKeys[key]:
			info.SizeMB += asFloat(val)
		}
	}
	return info
}

func parsePrefixes(m rueidis.RedisMessage) []string {
	def, err := m.ToArray()
	if err != nil {
		return nil
	}
	for i := 0; i+1 < len(def); i += 2 {
		if k, _ := def[i].ToString(); k == "prefixes" {
			p, _ := def[i+1].AsStrSlice()
			return p
		}
	}
	return nil
}

// parseAttributes reads [[identifier, x, attribute, y, type, T, ...], ...].
func parseAttributes(m rueidis.RedisMessage) []db.IndexAttribute {
	list, err := m.ToArray()
	if err != nil {
		return nil
	}
	out := make([]db.IndexAttribute, 0, len(list))
	for _, entry := range list {
		kv, err := entry.ToArray()
		if err != nil {
			continue
		}
		var a db.IndexAttribute
		a.Type = db.IndexFieldUnknown
		for j := 0; j+1 < len(kv); j += 2 {
			k, _ := kv[j].ToString()
			v, _ := kv[j+1].ToString()
			switch strings.ToLower(k) {
			case "identifier":
				a.Identifier = v
			case "attribute":
				a.Attribute = v
			case "type":
				a.Type = db.ParseIndexFieldType(v)
			}
		}
		if a.Attribute == "" {
			a.Attribute = a.Identifier
		}
		if a.Attribute != "" {
			out = append(out, a)
		}
	}
	return out
}

func asInt(m rueidis.RedisMessage) int64 {
	if n, err := m.AsInt64(); err == nil {
		return n
	}
	if f, err := m.AsFloat64(); err == nil {
		return int64(f)
	}
	return 0
}

func asFloat(m rueidis.RedisMessage) float64 {
	if f, err := m.AsFloat64(); err == nil {
		return f
	}
	if s, err := m.ToString(); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

func buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if idx == nil || idx.Name == "" {
		return nil, errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	args := []string{idx.Name}

	storage := idx.StorageType
	if storage == "" {
		storage = db.StorageHash
	}
	args = append(args, "ON", string(storage))

	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}

	args = append(args, "SCHEMA")

	for i := range idx.Fields {
		fieldArgs, err := buildFieldArgs(&idx.Fields[i])
		if err != nil {
			return nil, err
		}
		args = append(args, fieldArgs...)
	}

	return args, nil
}

func buildFieldArgs(f *db.IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, errors.New("field name is required")
	}

	args := []string{f.Name}

	if f.Alias != "" {
		args = append(args, "AS", f.Alias)
	}

	switch f.Type {
	case db.IndexFieldNumeric:
		args = append(args, "NUMERIC")

	case db.IndexFieldText:
		args = append(args, "TEXT")

	case db.IndexFieldTag:
		args = append(args, "TAG")
		if f.TagSeparator != "" {
			args = append(args, "SEPARATOR", f.TagSeparator)
		}
		if f.TagCaseSensitive {
			args = append(args, "CASESENSITIVE")
		}

	default:
		return nil, fmt.Errorf("unsupported type for field %s", f.Name)
	}

	if f.Sortable {
		args = append(args, "SORTABLE")
	}

	return args, nil
}
