package chi

import (
	domcat "github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	dashboarduc "github.com/kailas-cloud/mapvista/internal/usecase/dashboard"
)

// IndexDTO is a catalog entry.
type IndexDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DocCount    int64  `json:"doc_count"`
	Size        string `json:"size"`
	Health      string `json:"health"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
	Category    string `json:"category"`
	HasGeoData  bool   `json:"has_geo_data"`
}

// IndexListResponse is the body of GET /api/v1/indexes.
type IndexListResponse struct {
	Items []IndexDTO `json:"items"`
	Total int        `json:"total"`
}

// SortDTO is the active sort.
type SortDTO struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// RecordsResponse is a table view.
type RecordsResponse struct {
	Index   string          `json:"index"`
	Columns []table.Column  `json:"columns"`
	Rows    []record.Record `json:"rows"`
	Shown   int             `json:"shown"`
	Total   int             `json:"total"`
	Filters []string        `json:"filters"`
	Search  string          `json:"search,omitempty"`
	Sort    *SortDTO        `json:"sort,omitempty"`
}

// PointsResponse is a map projection with its fitted viewport.
type PointsResponse struct {
	Index    string           `json:"index"`
	Points   []mapview.Point  `json:"points"`
	Excluded int              `json:"excluded"`
	Viewport mapview.Viewport `json:"viewport"`
}

// SessionResponse is the body of GET /api/v1/session.
type SessionResponse struct {
	SessionID          string           `json:"session_id"`
	Catalog            []IndexDTO       `json:"catalog"`
	CatalogTerm        string           `json:"catalog_term,omitempty"`
	CatalogUnavailable bool             `json:"catalog_unavailable,omitempty"`
	SidebarCollapsed   bool             `json:"sidebar_collapsed"`
	Index              *IndexDTO        `json:"index,omitempty"`
	Record             *record.Record   `json:"record,omitempty"`
	Loading            bool             `json:"loading"`
	Table              RecordsResponse  `json:"table"`
	Points             []mapview.Point  `json:"points"`
	Excluded           int              `json:"excluded"`
	Viewport           mapview.Viewport `json:"viewport"`
}

func indexToDTO(d domcat.Descriptor) IndexDTO {
	return IndexDTO{
		ID:          d.ID(),
		Name:        d.Name(),
		DocCount:    d.DocumentCount(),
		Size:        d.SizeLabel(),
		Health:      string(d.Health()),
		Status:      d.Status(),
		LastUpdated: d.LastUpdated(),
		Category:    d.Category(),
		HasGeoData:  d.HasGeoData(),
	}
}

func indexesToDTO(list []domcat.Descriptor) []IndexDTO {
	out := make([]IndexDTO, len(list))
	for i, d := range list {
		out[i] = indexToDTO(d)
	}
	return out
}

func sortToDTO(s table.SortSpec) *SortDTO {
	if s.IsZero() {
		return nil
	}
	return &SortDTO{Field: s.Field(), Direction: string(s.Direction())}
}

func clausesToStrings(cs []table.Clause) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func viewToDTO(index string, v table.View, q table.Query) RecordsResponse {
	rows := v.Rows
	if rows == nil {
		rows = []record.Record{}
	}
	cols := v.Columns
	if cols == nil {
		cols = []table.Column{}
	}
	return RecordsResponse{
		Index:   index,
		Columns: cols,
		Rows:    rows,
		Shown:   v.Shown,
		Total:   v.Total,
		Filters: clausesToStrings(q.Clauses),
		Search:  q.Search,
		Sort:    sortToDTO(q.Sort),
	}
}

func snapshotToDTO(snap dashboarduc.Snapshot) SessionResponse {
	resp := SessionResponse{
		SessionID:          snap.SessionID,
		Catalog:            indexesToDTO(snap.Catalog),
		CatalogTerm:        snap.CatalogTerm,
		CatalogUnavailable: snap.CatalogUnavailable,
		SidebarCollapsed:   snap.SidebarCollapsed,
		Loading:            snap.Loading,
		Points:             snap.Map.Points,
		Excluded:           snap.Map.Excluded,
		Viewport:           snap.Viewport,
	}
	index := ""
	if snap.HasIndex {
		dto := indexToDTO(snap.Index)
		resp.Index = &dto
		index = dto.ID
	}
	if snap.HasRecord {
		r := snap.Record
		resp.Record = &r
	}
	resp.Table = viewToDTO(index, snap.Table, table.Query{
		Clauses: snap.Clauses,
		Search:  snap.Search,
		Sort:    snap.Sort,
	})
	if resp.Points == nil {
		resp.Points = []mapview.Point{}
	}
	return resp
}
