package mapvista

// Health is the backend health of an index.
type Health string

// Health constants.
const (
	HealthGreen   Health = "green"
	HealthYellow  Health = "yellow"
	HealthRed     Health = "red"
	HealthUnknown Health = "unknown"
)

// ColumnType tells how a column is displayed.
type ColumnType string

// Column type constants.
const (
	ColumnText       ColumnType = "text"
	ColumnNumber     ColumnType = "number"
	ColumnDate       ColumnType = "date"
	ColumnBoolean    ColumnType = "boolean"
	ColumnCoordinate ColumnType = "coordinate"
	ColumnStatus     ColumnType = "status"
	ColumnCurrency   ColumnType = "currency"
)

// Index is a catalog entry.
type Index struct {
	ID          string
	Name        string
	DocCount    int64
	Size        string
	Health      Health
	Status      string
	LastUpdated string
	Category    string
	HasGeoData  bool
}

// Column is a table column.
type Column struct {
	Name string
	Type ColumnType
}

// Field is one record field. Value holds a string, float64, bool,
// time.Time, or nil for JSON null.
type Field struct {
	Name  string
	Value any
}

// Record is a row with its fields in backend order.
type Record struct {
	ID     string
	Fields []Field
}

// Get returns the value of a field and whether the record has it.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Filter keeps records whose Field contains the substring, ignoring case.
type Filter struct {
	Field    string
	Contains string
}

// Query narrows and orders a table.
type Query struct {
	Filters   []Filter // ANDed
	Search    string   // any field contains, ignoring case
	SortField string
	Desc      bool
}

// Table is the filtered and sorted view of an index.
type Table struct {
	Columns []Column
	Rows    []Record
	Shown   int
	Total   int
}

// Point is a geolocated record.
type Point struct {
	ID    string
	Lat   float64
	Lng   float64
	Label string
}

// Points are the geolocated records of an index with a viewport that frames them.
type Points struct {
	Points    []Point
	Excluded  int
	CenterLat float64
	CenterLng float64
	Zoom      int
}

