package mapvista

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/mapvista/internal/db/redis"
	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/source"
	"github.com/kailas-cloud/mapvista/internal/source/elastic"
	"github.com/kailas-cloud/mapvista/internal/source/redisearch"
	"github.com/kailas-cloud/mapvista/internal/source/sample"
	cataloguc "github.com/kailas-cloud/mapvista/internal/usecase/catalog"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the mapvista SDK entry point. It is safe for concurrent use.
type Client struct {
	src     source.Source
	catalog *cataloguc.Service
	engine  *table.Engine
	mapping mapview.Mapping
	obs     *observer
	closeFn func()
}

// New creates a Client. With no driver option it serves the sample catalog.
// The provided context is used for the initial readiness check of RediSearch.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{driver: driverSample}
	for _, o := range opts {
		o.apply(cfg)
	}

	src, closeFn, err := createSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		closeFn()
		return nil, err
	}
	return wireClient(src, closeFn, cfg, obs), nil
}

func createSource(ctx context.Context, cfg *clientConfig) (source.Source, func(), error) {
	noop := func() {}
	switch cfg.driver {
	case driverSample:
		return sample.New(), noop, nil
	case driverElastic:
		c, err := elastic.New(elastic.Config{
			BaseURL:  cfg.baseURL,
			Timeout:  cfg.timeout,
			Size:     cfg.maxRecords,
			Username: cfg.username,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("mapvista: create search client: %w", err)
		}
		return c, noop, nil
	case driverRediSearch:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, nil, errors.New("mapvista: redis address required")
		}
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("mapvista: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("mapvista: database not ready: %w", err)
		}
		return redisearch.New(store, redisearch.Config{MaxRecords: cfg.maxRecords}), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("mapvista: unknown driver %q", cfg.driver)
	}
}

func wireClient(src source.Source, closeFn func(), cfg *clientConfig, obs *observer) *Client {
	mapping := mapview.DefaultMapping()
	if cfg.latField != "" && cfg.lngField != "" {
		mapping.LatField, mapping.LngField = cfg.latField, cfg.lngField
	}
	if len(cfg.labelFields) > 0 {
		mapping.LabelFields = cfg.labelFields
	}
	return &Client{
		src:     src,
		catalog: cataloguc.New(src, cfg.cacheTTL),
		engine:  table.NewEngine(),
		mapping: mapping,
		obs:     obs,
		closeFn: closeFn,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Ping checks backend connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "ping", "", 0, start, err) }()

	if err = c.src.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Indexes lists the catalog. A non-empty term keeps indexes whose name or
// category contains it, ignoring case.
func (c *Client) Indexes(ctx context.Context, term string) (out []Index, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "indexes", "", len(out), start, err) }()

	list, err := c.catalog.List(ctx, term)
	if err != nil {
		return nil, err
	}
	out = make([]Index, len(list))
	for i, d := range list {
		out[i] = indexFromDomain(d)
	}
	return out, nil
}

// Index returns one catalog entry.
func (c *Client) Index(ctx context.Context, id string) (out Index, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "index", id, 0, start, err) }()

	d, err := c.catalog.Get(ctx, id)
	if err != nil {
		return Index{}, err
	}
	return indexFromDomain(d), nil
}

// Table fetches the records of index and applies q.
func (c *Client) Table(ctx context.Context, index string, q Query) (out Table, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "table", index, out.Shown, start, err) }()

	tq, err := queryToDomain(q)
	if err != nil {
		return Table{}, err
	}
	rs, err := c.src.FetchRecords(ctx, index)
	if err != nil {
		return Table{}, fmt.Errorf("fetch %s: %w", index, err)
	}
	ds := table.NewDataset(rs.Records, rs.Annotations, c.mapping.LatField, c.mapping.LngField)
	return tableFromDomain(c.engine.Apply(ds, tq)), nil
}

// Points fetches the records of index and projects the geolocated ones.
func (c *Client) Points(ctx context.Context, index string) (out Points, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "points", index, len(out.Points), start, err) }()

	rs, err := c.src.FetchRecords(ctx, index)
	if err != nil {
		return Points{}, fmt.Errorf("fetch %s: %w", index, err)
	}
	proj := mapview.Project(rs.Records, c.mapping)
	vp := mapview.Fit(proj.Points, mapview.DefaultFrame)

	out = Points{
		Points:    make([]Point, len(proj.Points)),
		Excluded:  proj.Excluded,
		CenterLat: vp.Center.Lat,
		CenterLng: vp.Center.Lng,
		Zoom:      vp.Zoom,
	}
	for i, p := range proj.Points {
		out.Points[i] = Point{ID: p.ID, Lat: p.Lat, Lng: p.Lng, Label: p.Label}
	}
	return out, nil
}

func queryToDomain(q Query) (table.Query, error) {
	var tq table.Query
	for _, f := range q.Filters {
		c, err := table.NewClause(f.Field, f.Contains)
		if err != nil {
			return tq, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
		tq.Clauses = append(tq.Clauses, c)
	}
	tq.Search = q.Search
	if q.SortField != "" {
		dir := table.Ascending
		if q.Desc {
			dir = table.Descending
		}
		tq.Sort = table.NewSortSpec(q.SortField, dir)
	} else if q.Desc {
		return tq, fmt.Errorf("%w: descending order needs a sort field", domain.ErrInvalidSort)
	}
	return tq, nil
}
