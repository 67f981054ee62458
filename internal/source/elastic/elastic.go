// Package elastic reads the catalog and records from an Elasticsearch or
// OpenSearch compatible HTTP API.
package elastic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/source"
)

// Compile-time check: Client implements source.Source.
var _ source.Source = (*Client)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Defaults for Config.
const (
	DefaultTimeout = 10 * time.Second
	DefaultSize    = 100
	maxErrorBody   = 4 << 10
)

// Config holds the search API endpoint.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Size     int
	Username string
	Password string
}

// Client talks to the _cat and _search endpoints.
type Client struct {
	base     *url.URL
	http     *http.Client
	size     int
	username string
	password string
}

// New creates a Client. BaseURL may carry a path prefix such as "/api".
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("elastic base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse elastic base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("elastic base url must be http(s), got %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	return &Client{
		base:     base,
		http:     &http.Client{Timeout: timeout},
		size:     size,
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

// catIndex is one row of GET _cat/indices?format=json. Numbers arrive as strings.
type catIndex struct {
	Name      string `json:"index"`
	Health    string `json:"health"`
	Status    string `json:"status"`
	UUID      string `json:"uuid"`
	DocsCount string `json:"docs.count"`
	StoreSize string `json:"store.size"`
}

// FetchIndexes lists indexes via _cat/indices. Hidden indexes (leading dot) are skipped.
func (c *Client) FetchIndexes(ctx context.Context) ([]catalog.Descriptor, error) {
	body, err := c.get(ctx, "_cat/indices", url.Values{"format": {"json"}})
	if err != nil {
		return nil, err
	}

	var rows []catIndex
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode _cat/indices: %w", err)
	}

	out := make([]catalog.Descriptor, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" || strings.HasPrefix(row.Name, ".") {
			continue
		}
		count, _ := strconv.ParseInt(row.DocsCount, 10, 64)
		d, err := catalog.New(row.Name, catalog.Params{
			DocumentCount: count,
			SizeLabel:     row.StoreSize,
			Health:        catalog.ParseHealth(row.Health),
			Status:        row.Status,
		})
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// FetchRecords runs a match-all _search and flattens the hits.
func (c *Client) FetchRecords(ctx context.Context, index string) (source.RecordSet, error) {
	if index == "" || strings.ContainsAny(index, "/?#") {
		return source.RecordSet{}, fmt.Errorf("index %q: %w", index, domain.ErrIndexNotFound)
	}
	body, err := c.get(ctx, index+"/_search", url.Values{"size": {strconv.Itoa(c.size)}})
	if err != nil {
		return source.RecordSet{}, err
	}
	records, err := ParseHits(body)
	if err != nil {
		return source.RecordSet{}, fmt.Errorf("decode %s/_search: %w", index, err)
	}
	return source.RecordSet{Records: records}, nil
}

// Ping checks that the catalog endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "_cat/indices", url.Values{"format": {"json"}, "h": {"index"}})
	return err
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := *c.base
	u.Path = c.base.Path + "/" + path
	u.RawPath = ""
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", path, domain.ErrIndexNotFound)
	case resp.StatusCode >= http.StatusBadRequest:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("GET %s: status %d: %s: %w",
			path, resp.StatusCode, strings.TrimSpace(string(msg)), domain.ErrSourceUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}
	return body, nil
}
