package dashboard

import (
	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
)

// Snapshot is everything the dashboard renders for a session.
type Snapshot struct {
	SessionID string

	Catalog            []domcat.Descriptor
	CatalogTerm        string
	CatalogUnavailable bool
	SidebarCollapsed   bool

	Index    domcat.Descriptor
	HasIndex bool
	Loading  bool
	Loaded   bool

	Record    record.Record
	HasRecord bool

	Table   table.View
	Clauses []table.Clause
	Search  string
	Sort    table.SortSpec

	Map      mapview.Projection
	Viewport mapview.Viewport
}
