package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/metrics"
)

// Instrumented wraps a Source with fetch metrics and logging.
type Instrumented struct {
	inner  Source
	driver string
	logger *zap.Logger
}

// NewInstrumented wraps inner. driver labels the metrics.
func NewInstrumented(inner Source, driver string, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, driver: driver, logger: logger}
}

// FetchIndexes delegates and records the outcome.
func (s *Instrumented) FetchIndexes(ctx context.Context) ([]catalog.Descriptor, error) {
	start := time.Now()
	out, err := s.inner.FetchIndexes(ctx)
	s.observe("indexes", "", start, err)
	if err == nil {
		s.logger.Debug("Catalog fetched",
			zap.String("driver", s.driver),
			zap.Int("indexes", len(out)),
		)
	}
	return out, err
}

// FetchRecords delegates and records the outcome.
func (s *Instrumented) FetchRecords(ctx context.Context, index string) (RecordSet, error) {
	start := time.Now()
	out, err := s.inner.FetchRecords(ctx, index)
	s.observe("records", index, start, err)
	if err == nil {
		s.logger.Debug("Records fetched",
			zap.String("driver", s.driver),
			zap.String("index", index),
			zap.Int("records", len(out.Records)),
		)
	}
	return out, err
}

// Ping delegates without recording.
func (s *Instrumented) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx) //nolint:wrapcheck // transparent decorator
}

func (s *Instrumented) observe(op, index string, start time.Time, err error) {
	duration := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
		s.logger.Error("Source fetch failed",
			zap.String("driver", s.driver),
			zap.String("op", op),
			zap.String("index", index),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
	metrics.SourceFetchTotal.WithLabelValues(s.driver, op, status).Inc()
	metrics.SourceFetchDuration.WithLabelValues(s.driver, op).Observe(duration.Seconds())
}
