package mapvista

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverSample     = "sample"
	driverElastic    = "elastic"
	driverRediSearch = "redisearch"
)

type clientConfig struct {
	driver   string
	baseURL  string
	username string
	addrs    []string
	password string

	maxRecords int
	timeout    time.Duration
	cacheTTL   time.Duration

	latField    string
	lngField    string
	labelFields []string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSample serves the built-in demo catalog. This is the default.
func WithSample() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverSample
	})
}

// WithElastic reads from an Elasticsearch-compatible search API.
// baseURL may carry a path prefix such as "/api". Empty credentials
// disable basic auth.
func WithElastic(baseURL, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverElastic
		c.baseURL = baseURL
		c.username = username
		c.password = password
	})
}

// WithRediSearch reads from a Redis or Valkey instance with the search module.
func WithRediSearch(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRediSearch
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMaxRecords caps the records fetched per index.
// Default: 100.
func WithMaxRecords(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRecords = n
	})
}

// WithTimeout bounds each search API request. Ignored by other drivers.
// Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithCatalogCache keeps the index list for ttl. Zero disables caching (default).
func WithCatalogCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithCoordinateFields names the fields points are read from.
// Defaults: "latitude" and "longitude".
func WithCoordinateFields(lat, lng string) Option {
	return optionFunc(func(c *clientConfig) {
		c.latField = lat
		c.lngField = lng
	})
}

// WithLabelFields sets the fields tried in order when labelling a point.
// Defaults: "name", "storeName", "trackingId".
func WithLabelFields(fields ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.labelFields = fields
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
