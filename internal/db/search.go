package db

// SearchQuery is one FT.SEARCH call.
type SearchQuery struct {
	Index  string
	Query  string // "*" when empty
	Offset int
	Limit  int
	Return []string // all fields when empty
	SortBy string   // must name a SORTABLE field
	Desc   bool
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Fields keep the order the server returned.
type SearchEntry struct {
	Key    string
	Fields []Field
}

// IndexInfo is the subset of FT.INFO the dashboard uses.
type IndexInfo struct {
	Name       string
	NumDocs    int64
	SizeMB     float64
	Prefixes   []string
	Attributes []IndexAttribute
}

// IndexAttribute is one schema field reported by FT.INFO.
type IndexAttribute struct {
	Identifier string
	Attribute  string
	Type       IndexFieldType
}

// NumericAttributes returns the attribute names declared NUMERIC.
func (i *IndexInfo) NumericAttributes() map[string]bool {
	out := make(map[string]bool)
	for _, a := range i.Attributes {
		if a.Type == IndexFieldNumeric {
			out[a.Attribute] = true
		}
	}
	return out
}
