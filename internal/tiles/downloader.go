// Package tiles mirrors slippy-map tiles for a bounding box into a local
// directory so the dashboard map can run without a tile server.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/mapvista/internal/domain/geo"
)

// Defaults for Config.
const (
	DefaultURLTemplate = "https://a.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultUserAgent   = "MapVista-Dashboard-Tile-Downloader/1.0"
	DefaultRate        = 20 // requests per second
	DefaultTimeout     = 20 * time.Second
	MaxZoom            = 19
)

// Config describes one mirroring run.
type Config struct {
	URLTemplate string // {z}, {x} and {y} are substituted
	OutputDir   string
	UserAgent   string
	Rate        float64 // requests per second, <= 0 means unlimited
	Timeout     time.Duration
	MinZoom     int
	MaxZoom     int
	Bounds      geo.Bounds
}

// Stats are the totals of a run.
type Stats struct {
	Planned    int
	Skipped    int
	Downloaded int
	Failed     int
}

// Downloader fetches tiles one at a time.
type Downloader struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New validates cfg and creates a Downloader.
func New(cfg Config, client *http.Client, logger *zap.Logger) (*Downloader, error) {
	if cfg.URLTemplate == "" {
		cfg.URLTemplate = DefaultURLTemplate
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("output dir is required")
	}
	if cfg.Bounds.IsEmpty() {
		return nil, errors.New("bounds are required")
	}
	if cfg.MinZoom < 0 || cfg.MaxZoom > MaxZoom || cfg.MinZoom > cfg.MaxZoom {
		return nil, fmt.Errorf("zoom range must be within 0..%d, got %d..%d", MaxZoom, cfg.MinZoom, cfg.MaxZoom)
	}
	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(cfg.URLTemplate, p) {
			return nil, fmt.Errorf("url template %q lacks %s", cfg.URLTemplate, p)
		}
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	return &Downloader{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// Plan returns the tile range of every zoom level.
func (d *Downloader) Plan() []geo.TileRange {
	out := make([]geo.TileRange, 0, d.cfg.MaxZoom-d.cfg.MinZoom+1)
	for z := d.cfg.MinZoom; z <= d.cfg.MaxZoom; z++ {
		out = append(out, geo.RangeForBounds(d.cfg.Bounds, z))
	}
	return out
}

// Run walks every zoom level and downloads the tiles missing on disk.
// A failed tile is logged and skipped. Run stops early only when ctx ends
// or the output directory cannot be written.
func (d *Downloader) Run(ctx context.Context) (Stats, error) {
	plan := d.Plan()
	var st Stats
	for _, r := range plan {
		st.Planned += r.Count()
	}
	d.logger.Info("Starting tile download",
		zap.Int("min_zoom", d.cfg.MinZoom),
		zap.Int("max_zoom", d.cfg.MaxZoom),
		zap.Int("tiles", st.Planned),
		zap.String("output_dir", d.cfg.OutputDir),
	)

	for _, r := range plan {
		d.logger.Info("Processing zoom level", zap.Int("zoom", r.Zoom), zap.Int("tiles", r.Count()))
		for x := r.MinX; x <= r.MaxX; x++ {
			dir := filepath.Join(d.cfg.OutputDir, strconv.Itoa(r.Zoom), strconv.Itoa(x))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return st, fmt.Errorf("create %s: %w", dir, err)
			}
			for y := r.MinY; y <= r.MaxY; y++ {
				t := geo.Tile{Z: r.Zoom, X: x, Y: y}
				path := filepath.Join(dir, strconv.Itoa(y)+".png")
				if fileExists(path) {
					st.Skipped++
					continue
				}
				if err := d.limiter.Wait(ctx); err != nil {
					return st, err
				}
				if err := d.fetch(ctx, t, path); err != nil {
					if ctx.Err() != nil {
						return st, ctx.Err()
					}
					st.Failed++
					d.logger.Warn("Tile download failed", zap.String("url", TileURL(d.cfg.URLTemplate, t)), zap.Error(err))
					continue
				}
				st.Downloaded++
				d.logger.Debug("Tile downloaded", zap.Int("z", t.Z), zap.Int("x", t.X), zap.Int("y", t.Y))
			}
		}
	}

	d.logger.Info("Tile download finished",
		zap.Int("downloaded", st.Downloaded),
		zap.Int("skipped", st.Skipped),
		zap.Int("failed", st.Failed),
	)
	return st, nil
}

func (d *Downloader) fetch(ctx context.Context, t geo.Tile, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, TileURL(d.cfg.URLTemplate, t), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("get tile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get tile: status %d", resp.StatusCode)
	}

	// A tile only appears under its final name once complete.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tile-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("read tile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename tile: %w", err)
	}
	return nil
}

// TileURL fills the {z}, {x} and {y} placeholders of template.
func TileURL(template string, t geo.Tile) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	).Replace(template)
}

// BoundsFromBBox builds bounds from min/max longitude and latitude.
func BoundsFromBBox(minLng, minLat, maxLng, maxLat float64) (geo.Bounds, error) {
	if minLng > maxLng || minLat > maxLat {
		return geo.Bounds{}, fmt.Errorf("bbox min must not exceed max: %v,%v,%v,%v", minLng, minLat, maxLng, maxLat)
	}
	if !geo.ValidateCoordinates(minLat, minLng) || !geo.ValidateCoordinates(maxLat, maxLng) {
		return geo.Bounds{}, fmt.Errorf("bbox out of range: %v,%v,%v,%v", minLng, minLat, maxLng, maxLat)
	}
	var b geo.Bounds
	b.Extend(geo.LatLng{Lat: minLat, Lng: minLng})
	b.Extend(geo.LatLng{Lat: maxLat, Lng: maxLng})
	return b, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
