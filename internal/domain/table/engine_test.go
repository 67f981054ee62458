package table

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/mapvista/internal/domain/record"
)

func sampleDataset() Dataset {
	return NewDataset([]record.Record{
		rec("store_001", "storeName", "Downtown Coffee Hub", "revenue", 15420.5, "status", "open"),
		rec("store_002", "storeName", "Mall Electronics", "revenue", 32100.75, "status", "open"),
		rec("store_003", "storeName", "Corner Bookshop", "revenue", 8750.25, "status", "closed"),
	}, nil)
}

func TestEngine_FilterSearchSort(t *testing.T) {
	ds := sampleDataset()
	e := NewEngine()

	v := e.Apply(ds, Query{
		Clauses: []Clause{mustClause("status", "open")},
		Sort:    NewSortSpec("revenue", Descending),
	})
	if !reflect.DeepEqual(ids(v.Rows), []string{"store_002", "store_001"}) {
		t.Fatalf("rows = %v", ids(v.Rows))
	}
	if v.Shown != 2 || v.Total != 3 {
		t.Errorf("shown/total = %d/%d, want 2/3", v.Shown, v.Total)
	}

	v = e.Apply(ds, Query{Search: "coffee"})
	if !reflect.DeepEqual(ids(v.Rows), []string{"store_001"}) {
		t.Fatalf("search rows = %v", ids(v.Rows))
	}
}

func TestEngine_EmptyQueryKeepsSourceOrder(t *testing.T) {
	ds := sampleDataset()

	v := NewEngine().Apply(ds, Query{})
	if !reflect.DeepEqual(ids(v.Rows), ids(ds.Records())) {
		t.Fatalf("rows = %v", ids(v.Rows))
	}
	if len(v.Columns) != 3 {
		t.Errorf("columns = %d, want 3", len(v.Columns))
	}
}

func TestEngine_DoesNotMutateDataset(t *testing.T) {
	ds := sampleDataset()
	before := ids(ds.Records())

	NewEngine().Apply(ds, Query{Sort: NewSortSpec("storeName", Ascending)})
	if !reflect.DeepEqual(ids(ds.Records()), before) {
		t.Fatalf("dataset order changed: %v", ids(ds.Records()))
	}
}

func TestDataset_Find(t *testing.T) {
	ds := sampleDataset()

	r, ok := ds.Find("store_002")
	if !ok || r.Get("storeName").String() != "Mall Electronics" {
		t.Fatalf("Find = %v, %v", r.ID(), ok)
	}
	if _, ok := ds.Find("nope"); ok {
		t.Error("Find(nope) should miss")
	}
}
