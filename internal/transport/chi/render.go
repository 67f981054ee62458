package chi

import (
	"html/template"
	"strings"

	"golang.org/x/text/message"

	"github.com/kailas-cloud/mapvista/internal/domain/geo"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	"github.com/kailas-cloud/mapvista/internal/domain/record"
	"github.com/kailas-cloud/mapvista/internal/domain/table"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
	dashboarduc "github.com/kailas-cloud/mapvista/internal/usecase/dashboard"
)

var printer = message.NewPrinter(table.Locale)

var funcMap = template.FuncMap{
	"fmtCount": func(n int64) string { return printer.Sprintf("%d", n) },
	"healthClass": func(h string) string {
		switch h {
		case "green":
			return "ok"
		case "yellow":
			return "warn"
		case "red":
			return "err"
		default:
			return "dim"
		}
	},
}

type pageView struct {
	SessionID          string
	Catalog            []indexView
	CatalogTerm        string
	CatalogUnavailable bool
	SidebarCollapsed   bool

	HasIndex bool
	Index    indexView
	Loading  bool
	Loaded   bool

	Columns []columnView
	Rows    []rowView
	Shown   int
	Total   int
	Clauses []clauseView
	Search  string

	HasRecord bool
	RecordID  string
	Record    []fieldView

	Map      mapData
	Excluded int
}

type indexView struct {
	ID          string
	Name        string
	Category    string
	Size        string
	LastUpdated string
	Health      string
	DocCount    int64
	HasGeo      bool
	Selected    bool
}

type columnView struct {
	Name  string
	Type  string
	Arrow string
}

type rowView struct {
	ID       string
	Selected bool
	Cells    []cellView
}

type cellView struct {
	Text  string
	Class string
}

type clauseView struct {
	Index     int
	Field     string
	Substring string
}

type fieldView struct {
	Name  string
	Value string
}

// mapData is handed to the map script as JSON.
type mapData struct {
	TileURL  string          `json:"tileUrl"`
	Points   []mapview.Point `json:"points"`
	Center   geo.LatLng      `json:"center"`
	Zoom     int             `json:"zoom"`
	Selected string          `json:"selected,omitempty"`
}

func (s *Server) buildPageView(snap dashboarduc.Snapshot) pageView {
	v := pageView{
		SessionID:          snap.SessionID,
		CatalogTerm:        snap.CatalogTerm,
		CatalogUnavailable: snap.CatalogUnavailable,
		SidebarCollapsed:   snap.SidebarCollapsed,
		HasIndex:           snap.HasIndex,
		Loading:            snap.Loading,
		Loaded:             snap.Loaded,
		Shown:              snap.Table.Shown,
		Total:              snap.Table.Total,
		Search:             snap.Search,
		HasRecord:          snap.HasRecord,
		Excluded:           snap.Map.Excluded,
		Map: mapData{
			TileURL: s.opts.TileURL,
			Points:  snap.Map.Points,
			Center:  snap.Viewport.Center,
			Zoom:    snap.Viewport.Zoom,
		},
	}
	if v.Map.Points == nil {
		v.Map.Points = []mapview.Point{}
	}

	for _, d := range snap.Catalog {
		iv := toIndexView(indexToDTO(d))
		iv.Selected = snap.HasIndex && d.ID() == snap.Index.ID()
		v.Catalog = append(v.Catalog, iv)
	}
	if snap.HasIndex {
		v.Index = toIndexView(indexToDTO(snap.Index))
	}

	for _, c := range snap.Table.Columns {
		cv := columnView{Name: c.Name, Type: string(c.Type)}
		if snap.Sort.Field() == c.Name {
			cv.Arrow = "▲"
			if snap.Sort.Direction() == table.Descending {
				cv.Arrow = "▼"
			}
		}
		v.Columns = append(v.Columns, cv)
	}

	for _, r := range snap.Table.Rows {
		row := rowView{ID: r.ID(), Selected: snap.HasRecord && r.ID() == snap.Record.ID()}
		for _, c := range snap.Table.Columns {
			row.Cells = append(row.Cells, formatCell(r.Get(c.Name), c.Type))
		}
		v.Rows = append(v.Rows, row)
	}

	for i, c := range snap.Clauses {
		v.Clauses = append(v.Clauses, clauseView{Index: i, Field: c.Field(), Substring: c.Substring()})
	}

	if snap.HasRecord {
		v.RecordID = snap.Record.ID()
		v.Map.Selected = v.RecordID
		v.Record = recordFields(snap.Record)
	}
	return v
}

func toIndexView(d IndexDTO) indexView {
	return indexView{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Size:        d.Size,
		LastUpdated: d.LastUpdated,
		Health:      d.Health,
		DocCount:    d.DocCount,
		HasGeo:      d.HasGeoData,
	}
}

func recordFields(r record.Record) []fieldView {
	out := make([]fieldView, 0, r.Len())
	r.Range(func(k string, v value.Value) bool {
		out = append(out, fieldView{Name: k, Value: v.String()})
		return true
	})
	return out
}

// formatCell renders a value the way its column type is displayed.
func formatCell(v value.Value, t table.ColumnType) cellView {
	switch v.Kind() {
	case value.Undefined:
		return cellView{Text: "", Class: "dim"}
	case value.Null:
		return cellView{Text: "null", Class: "dim"}
	}

	switch t {
	case table.ColumnCoordinate:
		if f, ok := v.Float(); ok {
			return cellView{Text: printer.Sprintf("%.4f", f), Class: "mono coord"}
		}
	case table.ColumnCurrency:
		if f, ok := v.Float(); ok {
			return cellView{Text: printer.Sprintf("$%.2f", f), Class: "mono"}
		}
	case table.ColumnDate:
		if tm, ok := v.Time(); ok {
			return cellView{Text: tm.Format("Jan 2, 2006"), Class: "date"}
		}
	case table.ColumnStatus:
		return cellView{Text: v.String(), Class: "badge st-" + statusClass(v.String())}
	case table.ColumnNumber:
		return cellView{Text: v.String(), Class: "mono"}
	}
	return cellView{Text: v.String()}
}

func statusClass(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
