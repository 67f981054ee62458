// Package dashboard keeps per-session dashboard state: the selected index
// and record, the table query and the map viewport.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	logpkg "github.com/kailas-cloud/mapvista/internal/logger"
	"github.com/kailas-cloud/mapvista/internal/metrics"
)

// Defaults for Config.
const (
	DefaultCapacity      = 1024
	DefaultIdleTTL       = 30 * time.Minute
	DefaultPurgeInterval = time.Minute
)

// Config tunes the session store and the map.
type Config struct {
	Capacity      int
	IdleTTL       time.Duration
	PurgeInterval time.Duration
	MaxClauses    int
	Mapping       mapview.Mapping
	Frame         mapview.Frame
	Clock         gcache.Clock // nil means wall clock
}

func (c Config) withDefaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = DefaultIdleTTL
	}
	if c.PurgeInterval <= 0 {
		c.PurgeInterval = DefaultPurgeInterval
	}
	if c.MaxClauses <= 0 {
		c.MaxClauses = table.MaxClauses
	}
	if c.Clock == nil {
		c.Clock = gcache.NewRealClock()
	}
	if c.Mapping.LatField == "" {
		c.Mapping.LatField = mapview.DefaultLatField
	}
	if c.Mapping.LngField == "" {
		c.Mapping.LngField = mapview.DefaultLngField
	}
	if len(c.Mapping.LabelFields) == 0 {
		c.Mapping.LabelFields = mapview.DefaultLabelFields
	}
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		c.Frame = mapview.DefaultFrame
	}
	return c
}

// Service manages dashboard sessions.
type Service struct {
	fetcher Fetcher
	catalog Catalog
	engine  *table.Engine
	cfg     Config
	logger  *zap.Logger

	mu    sync.Mutex // serializes get-or-create and guards Page.seen
	pages gcache.Cache
}

// New creates a dashboard service.
func New(fetcher Fetcher, catalog Catalog, cfg Config, logger *zap.Logger) *Service {
	cfg = cfg.withDefaults()
	pages := gcache.New(cfg.Capacity).
		LRU().
		Expiration(cfg.IdleTTL).
		Clock(cfg.Clock).
		EvictedFunc(func(_, _ interface{}) {
			metrics.SessionsActive.Dec()
		}).
		Build()
	return &Service{
		fetcher: fetcher,
		catalog: catalog,
		engine:  table.NewEngine(),
		cfg:     cfg,
		logger:  logger,
		pages:   pages,
	}
}

// Open returns the page of session id, creating a new session when id is
// empty, unknown or expired.
func (s *Service) Open(id string) *Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if v, err := s.pages.Get(id); err == nil {
			p := v.(*Page) //nolint:forcetypeassert // only *Page is stored
			_ = s.pages.Set(id, p) // refresh idle expiry
			p.seen = s.cfg.Clock.Now()
			return p
		}
	}

	p := newPage(uuid.NewString())
	p.seen = s.cfg.Clock.Now()
	_ = s.pages.Set(p.id, p)
	metrics.SessionsActive.Inc()
	return p
}

// PurgeExpired drops every session idle for longer than IdleTTL and returns
// how many were dropped. The cache itself only notices expiry on access.
func (s *Service) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.cfg.Clock.Now()
	purged := 0
	for k, v := range s.pages.GetALL(false) {
		p := v.(*Page) //nolint:forcetypeassert // only *Page is stored
		if now.Sub(p.seen) > s.cfg.IdleTTL && s.pages.Remove(k) {
			purged++
		}
	}
	return purged
}

// StartJanitor purges expired sessions every PurgeInterval until ctx is done.
func (s *Service) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cfg.PurgeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.PurgeExpired(); n > 0 {
					s.logger.Debug("Expired sessions purged", zap.Int("count", n))
				}
			}
		}
	}()
}

// SelectIndex switches the page to index and loads its records. Selecting
// an index clears the record selection and the table query. A failed fetch
// keeps the previous record set and is not reported to the caller; a fetch
// overtaken by a newer selection is discarded.
func (s *Service) SelectIndex(ctx context.Context, p *Page, index string) error {
	d, err := s.catalog.Get(ctx, index)
	if err != nil {
		return fmt.Errorf("select index: %w", err)
	}

	p.mu.Lock()
	token := p.sel.SelectIndex(d)
	p.resetTable()
	p.mu.Unlock()

	rs, fetchErr := s.fetcher.FetchRecords(ctx, d.ID())

	log := logpkg.FromContext(ctx, s.logger)

	p.mu.Lock()
	defer p.mu.Unlock()

	if fetchErr != nil {
		if err := p.sel.Fail(token); err != nil {
			s.discard(log, p, index, err)
			return nil
		}
		metrics.FetchFailuresTotal.Inc()
		log.Warn("Record fetch failed, keeping previous records",
			zap.String("session", p.id),
			zap.String("index", index),
			zap.Error(fetchErr),
		)
		return nil
	}

	m := s.cfg.Mapping
	ds := table.NewDataset(rs.Records, rs.Annotations, m.LatField, m.LngField)
	if err := p.sel.Resolve(token, ds); err != nil {
		s.discard(log, p, index, err)
		return nil
	}

	proj := mapview.Project(ds.Records(), m)
	metrics.ExcludedPointsTotal.Add(float64(proj.Excluded))
	p.viewport = mapview.Fit(proj.Points, s.cfg.Frame)
	return nil
}

func (s *Service) discard(log *zap.Logger, p *Page, index string, err error) {
	var stale *domain.StaleFetchError
	if !errors.As(err, &stale) {
		return
	}
	metrics.StaleFetchTotal.Inc()
	log.Debug("Stale fetch discarded",
		zap.String("session", p.id),
		zap.String("index", index),
		zap.Uint64("token", stale.Token),
		zap.Uint64("latest", stale.Latest),
	)
}

// SelectRecord selects a record of the current record set. A record with
// valid coordinates recentres the map on it; otherwise the viewport stays.
func (s *Service) SelectRecord(p *Page, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, err := p.sel.SelectRecord(id)
	if err != nil {
		return fmt.Errorf("select record %q: %w", id, err)
	}
	if pt, ok := mapview.ProjectOne(r, s.cfg.Mapping); ok {
		p.viewport = mapview.Focus(pt)
	}
	return nil
}

// ClearRecord drops the record selection.
func (s *Service) ClearRecord(p *Page) {
	p.mu.Lock()
	p.sel.ClearRecord()
	p.mu.Unlock()
}

// AddFilter appends a field-substring clause.
func (s *Service) AddFilter(p *Page, field, substring string) error {
	c, err := table.NewClause(field, substring)
	if err != nil {
		return fmt.Errorf("add filter: %w: %w", domain.ErrInvalidFilter, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.clauses) >= s.cfg.MaxClauses {
		return fmt.Errorf("add filter: %w: at most %d clauses", domain.ErrInvalidFilter, s.cfg.MaxClauses)
	}
	p.clauses = append(p.clauses, c)
	return nil
}

// RemoveFilter removes the clause at position i.
func (s *Service) RemoveFilter(p *Page, i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.clauses) {
		return fmt.Errorf("remove filter %d: %w: no such clause", i, domain.ErrInvalidFilter)
	}
	p.clauses = append(p.clauses[:i:i], p.clauses[i+1:]...)
	return nil
}

// SetSearch sets the global table search term.
func (s *Service) SetSearch(p *Page, term string) {
	p.mu.Lock()
	p.search = term
	p.mu.Unlock()
}

// SetCatalogTerm sets the sidebar search term.
func (s *Service) SetCatalogTerm(p *Page, term string) {
	p.mu.Lock()
	p.term = term
	p.mu.Unlock()
}

// ToggleSort applies a click on the header of field.
func (s *Service) ToggleSort(p *Page, field string) error {
	if field == "" {
		return fmt.Errorf("toggle sort: %w: field is required", domain.ErrInvalidSort)
	}
	p.mu.Lock()
	p.sort = p.sort.Toggle(field)
	p.mu.Unlock()
	return nil
}

// ToggleSidebar collapses or expands the catalog panel.
func (s *Service) ToggleSidebar(p *Page) {
	p.mu.Lock()
	p.sidebar = !p.sidebar
	p.mu.Unlock()
}

// Snapshot renders the page. A failing catalog is logged and shown as empty.
func (s *Service) Snapshot(ctx context.Context, p *Page) Snapshot {
	p.mu.Lock()
	snap := Snapshot{
		SessionID:        p.id,
		CatalogTerm:      p.term,
		SidebarCollapsed: p.sidebar,
		Loading:          p.sel.Pending(),
		Loaded:           p.sel.Loaded(),
		Clauses:          append([]table.Clause(nil), p.clauses...),
		Search:           p.search,
		Sort:             p.sort,
		Viewport:         p.viewport,
	}
	snap.Index, snap.HasIndex = p.sel.Index()
	snap.Record, snap.HasRecord = p.sel.Record()
	ds := p.sel.Dataset()
	q := p.query()
	p.mu.Unlock()

	snap.Table = s.engine.Apply(ds, q)
	snap.Map = mapview.Project(ds.Records(), s.cfg.Mapping)

	list, err := s.catalog.List(ctx, snap.CatalogTerm)
	if err != nil {
		logpkg.FromContext(ctx, s.logger).Warn("Catalog unavailable",
			zap.String("session", p.id),
			zap.Error(err),
		)
		snap.CatalogUnavailable = true
	}
	snap.Catalog = list
	return snap
}
