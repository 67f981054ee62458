package table

import (
	"github.com/kailas-cloud/mapvista/internal/domain/record"
)

// Dataset is a fetched record set with its columns resolved once at load.
type Dataset struct {
	records []record.Record
	columns []Column
}

// NewDataset wraps records and infers their columns.
func NewDataset(records []record.Record, ann Annotations, coordFields ...string) Dataset {
	return Dataset{
		records: records,
		columns: InferColumns(records, ann, coordFields...),
	}
}

// Records returns the fetched records in source order.
func (d Dataset) Records() []record.Record { return d.records }

// Columns returns the resolved columns.
func (d Dataset) Columns() []Column { return d.columns }

// Len returns the number of fetched records.
func (d Dataset) Len() int { return len(d.records) }

// Find returns the record with the given id.
func (d Dataset) Find(id string) (record.Record, bool) {
	for _, r := range d.records {
		if r.ID() == id {
			return r, true
		}
	}
	return record.Record{}, false
}

// Query is the table state applied to a dataset.
type Query struct {
	Clauses []Clause
	Search  string
	Sort    SortSpec
}

// View is the filtered/sorted projection rendered by the table.
type View struct {
	Rows    []record.Record `json:"rows"`
	Columns []Column        `json:"columns"`
	Sort    SortSpec        `json:"-"`
	Shown   int             `json:"shown"`
	Total   int             `json:"total"`
}

// Engine applies queries to datasets. It is a pure transform over its inputs.
type Engine struct {
	sorter *Sorter
}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{sorter: NewSorter()}
}

// Apply filters by clauses, then by the global search term, then sorts.
// The dataset is not modified.
func (e *Engine) Apply(ds Dataset, q Query) View {
	rows := Filter(ds.records, q.Clauses)
	if q.Search != "" {
		rows = Search(rows, q.Search)
	}
	rows = e.sorter.Sort(rows, q.Sort)

	return View{
		Rows:    rows,
		Columns: ds.columns,
		Sort:    q.Sort,
		Shown:   len(rows),
		Total:   len(ds.records),
	}
}
