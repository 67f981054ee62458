package redisearch

import (
	"context"
	"strings"

	"github.com/kailas-cloud/mapvista/internal/db"
)

// memStore is an in-memory Store + SeedStore. Hashes keep insertion order
// and FT.SEARCH returns documents in write order.
type memStore struct {
	indexes []*db.IndexDefinition
	keys    []string
	hashes  map[string][]db.Field

	pingErr   error
	listErr   error
	searchErr error
	infoErr   map[string]error

	lastQuery db.SearchQuery
}

func newMemStore() *memStore {
	return &memStore{hashes: make(map[string][]db.Field)}
}

func (m *memStore) Ping(_ context.Context) error { return m.pingErr }

func (m *memStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	for _, d := range m.indexes {
		if d.Name == def.Name {
			return db.ErrIndexExists
		}
	}
	m.indexes = append(m.indexes, def)
	return nil
}

func (m *memStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	for _, it := range items {
		if _, ok := m.hashes[it.Key]; !ok {
			m.keys = append(m.keys, it.Key)
		}
		m.hashes[it.Key] = append([]db.Field(nil), it.Fields...)
	}
	return nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		h := make(map[string]string)
		for _, f := range m.hashes[k] {
			h[f.Name] = f.Value
		}
		out[i] = h
	}
	return out, nil
}

func (m *memStore) ListIndexes(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	names := make([]string, len(m.indexes))
	for i, d := range m.indexes {
		names[i] = d.Name
	}
	return names, nil
}

func (m *memStore) def(name string) *db.IndexDefinition {
	for _, d := range m.indexes {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func (m *memStore) docKeys(d *db.IndexDefinition) []string {
	var out []string
	for _, k := range m.keys {
		for _, p := range d.Prefixes {
			if strings.HasPrefix(k, p) {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

func (m *memStore) IndexInfo(_ context.Context, name string) (*db.IndexInfo, error) {
	if err := m.infoErr[name]; err != nil {
		return nil, err
	}
	d := m.def(name)
	if d == nil {
		return nil, db.ErrIndexNotFound
	}
	info := &db.IndexInfo{
		Name:     name,
		NumDocs:  int64(len(m.docKeys(d))),
		SizeMB:   0.5,
		Prefixes: d.Prefixes,
	}
	for _, f := range d.Fields {
		info.Attributes = append(info.Attributes, db.IndexAttribute{Identifier: f.Name, Attribute: f.Name, Type: f.Type})
	}
	return info, nil
}

func (m *memStore) Search(_ context.Context, q db.SearchQuery) (*db.SearchResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	m.lastQuery = q
	offset, limit := q.Offset, q.Limit
	d := m.def(q.Index)
	if d == nil {
		return nil, db.ErrIndexNotFound
	}
	keys := m.docKeys(d)
	res := &db.SearchResult{Total: len(keys)}
	for i := offset; i < len(keys) && i < offset+limit; i++ {
		res.Entries = append(res.Entries, db.SearchEntry{Key: keys[i], Fields: m.hashes[keys[i]]})
	}
	return res, nil
}
