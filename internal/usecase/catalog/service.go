package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"github.com/kailas-cloud/mapvista/internal/domain"
	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/metrics"
)

const cacheKey = "indexes"

// Service serves the sidebar catalog. The index list is cached for ttl;
// a zero ttl disables caching.
type Service struct {
	src   Source
	ttl   time.Duration
	cache gcache.Cache
}

// New creates a catalog service.
func New(src Source, ttl time.Duration) *Service {
	s := &Service{src: src, ttl: ttl}
	if ttl > 0 {
		s.cache = gcache.New(1).Expiration(ttl).Build()
	}
	return s
}

// List returns the indexes whose name or category contains term.
func (s *Service) List(ctx context.Context, term string) ([]domcat.Descriptor, error) {
	all, _, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domcat.Descriptor, 0, len(all))
	for _, d := range all {
		if d.Matches(term) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Get returns the index with the given id. An id missing from a cached list
// drops the cache and is looked up once more in a fresh list.
func (s *Service) Get(ctx context.Context, id string) (domcat.Descriptor, error) {
	all, cached, err := s.all(ctx)
	if err != nil {
		return domcat.Descriptor{}, err
	}
	if d, ok := find(all, id); ok {
		return d, nil
	}
	if cached {
		s.Invalidate()
		if all, _, err = s.all(ctx); err != nil {
			return domcat.Descriptor{}, err
		}
		if d, ok := find(all, id); ok {
			return d, nil
		}
	}
	return domcat.Descriptor{}, fmt.Errorf("get index %q: %w", id, domain.ErrIndexNotFound)
}

func find(list []domcat.Descriptor, id string) (domcat.Descriptor, bool) {
	for _, d := range list {
		if d.ID() == id {
			return d, true
		}
	}
	return domcat.Descriptor{}, false
}

// Invalidate drops the cached index list.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// all returns the index list and whether it came from the cache.
func (s *Service) all(ctx context.Context) ([]domcat.Descriptor, bool, error) {
	if s.cache != nil {
		if v, err := s.cache.Get(cacheKey); err == nil {
			if list, ok := v.([]domcat.Descriptor); ok {
				metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
				return list, true, nil
			}
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	list, err := s.src.FetchIndexes(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list indexes: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(cacheKey, list)
	}
	return list, false, nil
}
