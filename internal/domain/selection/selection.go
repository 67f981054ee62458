// Package selection tracks which index and record the dashboard shows.
//
// Every index selection issues a fetch token. A fetch result is applied only
// when it carries the latest token, so a slow response for an index the
// user already left can never overwrite the current record set.
package selection

import (
	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
)

// State is the selection of one dashboard. Not safe for concurrent use;
// the owner serializes access.
type State struct {
	index    catalog.Descriptor
	record   record.Record
	hasRec   bool
	data     table.Dataset
	dataOf   string // index id the record set was fetched for
	loaded   bool
	token    uint64
	resolved uint64
}

// New returns a State with nothing selected.
func New() *State {
	return &State{}
}

// SelectIndex switches to d, clears the record selection and returns the
// token the matching fetch must resolve with. The previous record set stays
// visible until the fetch resolves.
func (s *State) SelectIndex(d catalog.Descriptor) uint64 {
	s.index = d
	s.record, s.hasRec = record.Record{}, false
	s.token++
	return s.token
}

// Resolve installs a fetched record set if token is still the latest.
// A superseded token yields a *domain.StaleFetchError and changes nothing.
func (s *State) Resolve(token uint64, ds table.Dataset) error {
	if token != s.token {
		return domain.NewStaleFetch(token, s.token)
	}
	s.data = ds
	s.dataOf = s.index.ID()
	s.loaded = true
	s.resolved = token
	return nil
}

// Fail marks the fetch for token as finished without data.
// The previous record set is retained.
func (s *State) Fail(token uint64) error {
	if token != s.token {
		return domain.NewStaleFetch(token, s.token)
	}
	s.resolved = token
	return nil
}

// SelectRecord selects the record with id from the current record set.
// Until a fetch for the selected index resolves there are no records of
// that index, so every id is reported as not found.
func (s *State) SelectRecord(id string) (record.Record, error) {
	if s.index.IsZero() {
		return record.Record{}, domain.ErrNoIndexSelected
	}
	if s.Pending() || s.dataOf != s.index.ID() {
		return record.Record{}, domain.ErrRecordNotFound
	}
	r, ok := s.data.Find(id)
	if !ok {
		return record.Record{}, domain.ErrRecordNotFound
	}
	s.record, s.hasRec = r, true
	return r, nil
}

// ClearRecord drops the record selection.
func (s *State) ClearRecord() {
	s.record, s.hasRec = record.Record{}, false
}

// Index returns the selected index.
func (s *State) Index() (catalog.Descriptor, bool) {
	return s.index, !s.index.IsZero()
}

// Record returns the selected record.
func (s *State) Record() (record.Record, bool) {
	return s.record, s.hasRec
}

// Dataset returns the current record set.
func (s *State) Dataset() table.Dataset { return s.data }

// Loaded reports whether any fetch has resolved with data.
func (s *State) Loaded() bool { return s.loaded }

// Pending reports whether the latest fetch has not resolved yet.
func (s *State) Pending() bool { return s.token != s.resolved }

// Token returns the latest issued fetch token.
func (s *State) Token() uint64 { return s.token }
