package dashboard

import (
	"context"

	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/source"
)

// Fetcher loads the records of one index.
type Fetcher interface {
	FetchRecords(ctx context.Context, index string) (source.RecordSet, error)
}

// Catalog resolves sidebar indexes.
type Catalog interface {
	List(ctx context.Context, term string) ([]domcat.Descriptor, error)
	Get(ctx context.Context, id string) (domcat.Descriptor, error)
}
