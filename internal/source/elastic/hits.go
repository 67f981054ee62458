package elastic

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

// ParseHits flattens hits.hits[] of a _search response into records shaped
// {id: _id, ..._source}. Source keys keep their document order; a source
// "id" field replaces _id in place.
func ParseHits(body []byte) ([]record.Record, error) {
	var (
		out     []record.Record
		itemErr error
	)

	_, err := jsonparser.ArrayEach(body, func(hit []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if itemErr != nil || dataType != jsonparser.Object {
			return
		}
		r, err := parseHit(hit)
		if err != nil {
			itemErr = err
			return
		}
		out = append(out, r)
	}, "hits", "hits")

	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("hits: %w", err)
	case itemErr != nil:
		return nil, itemErr
	}
	return out, nil
}

func parseHit(hit []byte) (record.Record, error) {
	id, err := jsonparser.GetString(hit, "_id")
	if err != nil {
		return record.Record{}, fmt.Errorf("hit without _id: %w", err)
	}
	b := record.NewBuilder(id)

	src, vt, _, err := jsonparser.Get(hit, "_source")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || vt == jsonparser.Null {
		return b.Build(), nil
	}
	if err != nil {
		return record.Record{}, fmt.Errorf("hit %s _source: %w", id, err)
	}

	err = jsonparser.ObjectEach(src, func(key, raw []byte, vt jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("field name: %w", err)
		}
		v, err := value.FromJSON(raw, vt)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		b.Set(name, v)
		return nil
	})
	if err != nil {
		return record.Record{}, fmt.Errorf("hit %s: %w", id, err)
	}
	return b.Build(), nil
}
