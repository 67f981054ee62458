package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
)

// Source lists the indexes of the configured backend.
type Source interface {
	FetchIndexes(ctx context.Context) ([]domcat.Descriptor, error)
}
