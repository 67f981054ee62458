package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexNotFound signals an index missing from the catalog.
	ErrIndexNotFound = errors.New("index not found")
	// ErrRecordNotFound signals a record missing from the current record set.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidFilter signals a malformed filter clause.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidSort signals a malformed sort request.
	ErrInvalidSort = errors.New("invalid sort")
	// ErrSourceUnavailable signals a failing catalog or search backend.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrStaleFetch signals a fetch result superseded by a newer selection.
	ErrStaleFetch = errors.New("stale fetch")
	// ErrNoIndexSelected signals a record operation without a selected index.
	ErrNoIndexSelected = errors.New("no index selected")
)

// StaleFetchError wraps ErrStaleFetch with the tokens involved.
type StaleFetchError struct {
	Token  uint64
	Latest uint64
}

func (e *StaleFetchError) Error() string {
	return fmt.Sprintf("%s: token %d superseded by %d", ErrStaleFetch.Error(), e.Token, e.Latest)
}

func (e *StaleFetchError) Unwrap() error { return ErrStaleFetch }

// NewStaleFetch creates a stale fetch error.
func NewStaleFetch(token, latest uint64) error {
	return &StaleFetchError{Token: token, Latest: latest}
}
