package mapvista

import "github.com/kailas-cloud/mapvista/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrIndexNotFound     = domain.ErrIndexNotFound
	ErrInvalidFilter     = domain.ErrInvalidFilter
	ErrInvalidSort       = domain.ErrInvalidSort
	ErrSourceUnavailable = domain.ErrSourceUnavailable
)
