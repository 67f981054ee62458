// Package source defines where the dashboard reads its catalog and records from.
package source

import (
	"context"

	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
)

// Source lists indexes and fetches their records.
//
// Implementations return domain.ErrIndexNotFound for unknown indexes and wrap
// transport failures in domain.ErrSourceUnavailable.
type Source interface {
	FetchIndexes(ctx context.Context) ([]catalog.Descriptor, error)
	FetchRecords(ctx context.Context, index string) (RecordSet, error)
	Ping(ctx context.Context) error
}

// RecordSet is one fetched page of records with the column annotations the
// backend knows about.
type RecordSet struct {
	Records     []record.Record
	Annotations table.Annotations
}

// Driver names accepted by configuration.
const (
	DriverSample     = "sample"
	DriverElastic    = "elastic"
	DriverRediSearch = "redisearch"
)
