package redisearch

import (
	"context"

	"github.com/kailas-cloud/mapvista/internal/db"
)

// Store is the subset of db.Store the source reads through.
type Store interface {
	db.Pinger
	ListIndexes(ctx context.Context) ([]string, error)
	IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error)
	Search(ctx context.Context, q db.SearchQuery) (*db.SearchResult, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// SeedStore is the subset of db.Store the seeder writes through.
type SeedStore interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
}
