package health

import (
	"context"

	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
)

// SourcePinger checks backend availability.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// CatalogLister lists the sidebar catalog.
type CatalogLister interface {
	List(ctx context.Context, term string) ([]domcat.Descriptor, error)
}
