package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/config"
	"github.com/kailas-cloud/mapvista/internal/domain/geo"
	logpkg "github.com/kailas-cloud/mapvista/internal/logger"
	"github.com/kailas-cloud/mapvista/internal/tiles"
	"github.com/kailas-cloud/mapvista/internal/version"
)

func main() {
	fs := pflag.NewFlagSet("tiles", pflag.ExitOnError)
	bbox := fs.String("bbox", "68,6,98,37", "bounding box as minLng,minLat,maxLng,maxLat")
	minZoom := fs.Int("min-zoom", 0, "first zoom level")
	maxZoom := fs.Int("max-zoom", 14, "last zoom level")
	out := fs.StringP("out", "o", "tiles", "output directory")
	urlTemplate := fs.String("url", tiles.DefaultURLTemplate, "tile URL template with {z}, {x} and {y}")
	userAgent := fs.String("user-agent", tiles.DefaultUserAgent, "User-Agent header sent to the tile server")
	rps := fs.Float64("rate", tiles.DefaultRate, "requests per second, 0 for unlimited")
	level := fs.String("log-level", "", "debug, info, warn or error")
	showVersion := fs.Bool("version", false, "print version and exit")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println(version.String("tiles"))
		return
	}

	logger, err := logpkg.NewLogger(config.GetEnv(), "tiles", *level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	bounds, err := parseBBox(*bbox)
	if err != nil {
		logger.Fatal("Invalid bbox", zap.Error(err))
	}

	d, err := tiles.New(tiles.Config{
		URLTemplate: *urlTemplate,
		OutputDir:   *out,
		UserAgent:   version.UserAgent(*userAgent),
		Rate:        *rps,
		MinZoom:     *minZoom,
		MaxZoom:     *maxZoom,
		Bounds:      bounds,
	}, nil, logger)
	if err != nil {
		logger.Fatal("Invalid downloader config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := d.Run(ctx)
	if err != nil {
		logger.Error("Tile download stopped", zap.Error(err), zap.Int("downloaded", st.Downloaded))
		os.Exit(1)
	}
	logger.Info("Tiles saved",
		zap.String("output_dir", *out),
		zap.Int("planned", st.Planned),
		zap.Int("downloaded", st.Downloaded),
		zap.Int("skipped", st.Skipped),
		zap.Int("failed", st.Failed),
	)
}

func parseBBox(s string) (b geo.Bounds, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return b, fmt.Errorf("want 4 comma-separated numbers, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return b, fmt.Errorf("bbox value %q: %w", p, err)
		}
	}
	return tiles.BoundsFromBBox(v[0], v[1], v[2], v[3])
}
